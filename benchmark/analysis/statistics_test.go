package analysis

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, 20, 30})
	if s.N != 3 {
		t.Errorf("N = %d, want 3", s.N)
	}
	if math.Abs(s.Mean-20) > 1e-9 {
		t.Errorf("Mean = %v, want 20", s.Mean)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("Min, Max = %v, %v, want 10, 30", s.Min, s.Max)
	}
	if s.StdDev <= 0 {
		t.Errorf("StdDev = %v, want > 0", s.StdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.N != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}

func TestMannWhitneyU_DistinctSamples(t *testing.T) {
	// Clearly separated samples should be significant.
	sample1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	sample2 := []float64{101, 102, 103, 104, 105, 106, 107, 108}

	r := MannWhitneyU(sample1, sample2)
	if !r.Significant {
		t.Errorf("separated samples: p = %v, want significant", r.PValue)
	}
}

func TestMannWhitneyU_IdenticalSamples(t *testing.T) {
	sample := []float64{5, 5, 5, 5, 5, 5}

	r := MannWhitneyU(sample, sample)
	if r.Significant {
		t.Errorf("identical samples: p = %v, want not significant", r.PValue)
	}
}

func TestMannWhitneyU_EmptySample(t *testing.T) {
	r := MannWhitneyU(nil, []float64{1, 2})
	if r.U != 0 || r.Significant {
		t.Errorf("empty sample result = %+v, want zero result", r)
	}
}
