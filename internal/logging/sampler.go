package logging

// ProgressSampler thins per-file progress logging to one entry per step of
// completion. Moving to another file starts over.
type ProgressSampler struct {
	step   float64
	file   string
	bucket int
}

// NewProgressSampler returns a sampler that lets one sample through per
// stepPercent of progress (10 when stepPercent is not positive).
func NewProgressSampler(stepPercent float64) *ProgressSampler {
	if stepPercent <= 0 {
		stepPercent = 10
	}
	return &ProgressSampler{step: stepPercent, bucket: -1}
}

// ShouldLog reports whether the sample for file at fraction (0-1) starts a
// new step. Negative fractions mean the duration is unknown; only the first
// such sample per file is let through.
func (s *ProgressSampler) ShouldLog(file string, fraction float64) bool {
	if s == nil {
		return true
	}
	if file != s.file {
		s.file = file
		s.bucket = -1
	}
	bucket := 0
	if fraction >= 0 {
		bucket = int(min(fraction, 1) * 100 / s.step)
	}
	if bucket <= s.bucket {
		return false
	}
	s.bucket = bucket
	return true
}
