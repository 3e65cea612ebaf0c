package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"echomux/internal/jobs"
)

// progressSteps is the resolution of the batch bar; jobs report fractions.
const progressSteps = 1000

// progressReporter draws one bar per batch from jobs.Progress samples. A
// nil reporter ignores updates.
type progressReporter struct {
	out   io.Writer
	bar   *progressbar.ProgressBar
	index int
}

func newProgressReporter(out io.Writer, enabled bool) *progressReporter {
	if !enabled || out == nil {
		return nil
	}
	return &progressReporter{out: out}
}

func (p *progressReporter) Update(sample jobs.Progress) {
	if p == nil {
		return
	}
	description := fmt.Sprintf("[%d/%d] %s", sample.Index, sample.Total, filepath.Base(sample.File))
	if p.bar == nil {
		p.bar = progressbar.NewOptions(progressSteps,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "▐",
				BarEnd:        "▌",
			}),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetRenderBlankState(true),
		)
		p.index = sample.Index
	} else if sample.Index != p.index {
		p.bar.Describe(description)
		p.index = sample.Index
	}
	_ = p.bar.Set(int(sample.Overall * progressSteps))
}

// Finish completes the bar and moves the cursor past it.
func (p *progressReporter) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.out)
}
