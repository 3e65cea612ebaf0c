package jobs

import (
	"time"
)

// Kind names a batch type.
type Kind string

const (
	KindExtract Kind = "extract"
	KindMerge   Kind = "merge"
	KindEmbed   Kind = "embed"
)

// Outcome is the result for one source file.
type Outcome struct {
	Source  string        `json:"source"`
	Output  string        `json:"output,omitempty"`
	Skipped bool          `json:"skipped,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
}

// Failed reports whether ffmpeg or probing failed for this file.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Report summarizes a finished (or interrupted) batch.
type Report struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Outcomes []Outcome `json:"outcomes"`
}

// Counts returns how many files succeeded, were skipped, and failed.
func (r Report) Counts() (succeeded, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch {
		case o.Failed():
			failed++
		case o.Skipped:
			skipped++
		default:
			succeeded++
		}
	}
	return succeeded, skipped, failed
}

// Outputs lists the files written by successful tasks.
func (r Report) Outputs() []string {
	var out []string
	for _, o := range r.Outcomes {
		if !o.Skipped && !o.Failed() && o.Output != "" {
			out = append(out, o.Output)
		}
	}
	return out
}

// Progress is one batch-level progress sample.
type Progress struct {
	JobID string
	Kind  Kind
	// Index is the 1-based position of the file being processed.
	Index int
	Total int
	File  string
	// File and Overall are fractions in [0,1]; FileKnown is false when the
	// source duration could not be read.
	FileFraction float64
	FileKnown    bool
	Overall      float64
}
