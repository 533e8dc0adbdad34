package mmwave

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
	if s.MeanSNR != 0 || s.MeanRange != 0 {
		t.Errorf("empty summary has non-zero means: %+v", s)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]DetectedObject{{Range: 4.5, SNR: 120, Noise: 30}})
	if s.Count != 1 {
		t.Fatalf("Count = %d, want 1", s.Count)
	}
	if s.MeanSNR != 120 || s.MeanNoise != 30 || s.MeanRange != 4.5 {
		t.Errorf("means wrong: %+v", s)
	}
	if s.StdDevSNR != 0 || s.StdDevRange != 0 {
		t.Errorf("single-sample stddev should be 0, got %v / %v", s.StdDevSNR, s.StdDevRange)
	}
	if s.MinRange != 4.5 || s.MaxRange != 4.5 {
		t.Errorf("range bounds wrong: %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	objects := []DetectedObject{
		{Range: 2, SNR: 100, Noise: 10},
		{Range: 4, SNR: 200, Noise: 20},
		{Range: 6, SNR: 300, Noise: 30},
	}
	s := Summarize(objects)

	if s.Count != 3 {
		t.Fatalf("Count = %d, want 3", s.Count)
	}
	if s.MeanSNR != 200 {
		t.Errorf("MeanSNR = %v, want 200", s.MeanSNR)
	}
	if s.MeanNoise != 20 {
		t.Errorf("MeanNoise = %v, want 20", s.MeanNoise)
	}
	if s.MinRange != 2 || s.MaxRange != 6 || s.MeanRange != 4 {
		t.Errorf("range summary wrong: %+v", s)
	}
	// Sample stddev of {100, 200, 300} is 100.
	if math.Abs(s.StdDevSNR-100) > 1e-9 {
		t.Errorf("StdDevSNR = %v, want 100", s.StdDevSNR)
	}
}
