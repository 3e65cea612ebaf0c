package logging

import "testing"

func TestProgressSamplerSteps(t *testing.T) {
	s := NewProgressSampler(25)
	samples := []struct {
		file     string
		fraction float64
		want     bool
	}{
		{"a.mkv", 0, true},
		{"a.mkv", 0.1, false},
		{"a.mkv", 0.26, true},
		{"a.mkv", 0.3, false},
		{"a.mkv", 0.2, false},
		{"a.mkv", 1.4, true},
		{"b.mkv", 0.9, true},
		{"b.mkv", 0.95, false},
		{"c.mkv", -1, true},
		{"c.mkv", -1, false},
	}
	for i, sample := range samples {
		if got := s.ShouldLog(sample.file, sample.fraction); got != sample.want {
			t.Fatalf("sample %d (%s %.2f) = %v, want %v", i, sample.file, sample.fraction, got, sample.want)
		}
	}
}

func TestProgressSamplerDefaultsAndNil(t *testing.T) {
	if got := NewProgressSampler(0).step; got != 10 {
		t.Fatalf("default step = %v, want 10", got)
	}
	var s *ProgressSampler
	if !s.ShouldLog("a.mkv", 0.5) {
		t.Fatal("nil sampler should let every sample through")
	}
}
