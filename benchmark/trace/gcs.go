package trace

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// LoadGCS reads a trace object from a Google Cloud Storage bucket,
// decompressing objects whose name ends in ".zst".
func LoadGCS(ctx context.Context, bucket, object string) ([]string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, fmt.Errorf("trace object %s/%s does not exist", bucket, object)
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	return decode(reader, codecFor(object))
}

// SplitGCSPath splits a "gs://bucket/object" path into bucket and object.
func SplitGCSPath(path string) (bucket, object string, err error) {
	const prefix = "gs://"
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return "", "", fmt.Errorf("not a GCS path: %s", path)
	}
	rest := path[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			if i == len(rest)-1 {
				break
			}
			return rest[:i], rest[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("GCS path %s has no object component", path)
}
