// Package trace loads key traces for replay against cache policies.
//
// A trace is a text stream with one key per line; blank lines and lines
// starting with '#' are skipped. Files ending in ".zst" are transparently
// decompressed.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cachelab/sieve/internal/codec"
	"github.com/cachelab/sieve/internal/codec/noopcodec"
	"github.com/cachelab/sieve/internal/codec/zstdcodec"
)

// Load reads a trace from a local file, decompressing ".zst" files.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	return decode(f, codecFor(path))
}

// Parse reads an uncompressed trace from r.
func Parse(r io.Reader) ([]string, error) {
	return decode(r, noopcodec.New())
}

// codecFor picks the codec from the file name extension.
func codecFor(name string) codec.Codec {
	if strings.HasSuffix(name, ".zst") {
		return zstdcodec.New()
	}
	return noopcodec.New()
}

func decode(r io.Reader, c codec.Codec) ([]string, error) {
	decoder, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decoder.Close()

	var keys []string
	scanner := bufio.NewScanner(decoder)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return keys, nil
}
