package preflight

import (
	"context"
	"strings"

	"echomux/internal/config"
	"echomux/internal/deps"
)

// Result is the outcome of one readiness check. Optional checks are shown
// but never block a batch.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
	Optional bool   `json:"optional,omitempty"`
}

func pass(name, detail string) Result { return Result{Name: name, Passed: true, Detail: detail} }
func fail(name, detail string) Result { return Result{Name: name, Detail: detail} }

// RunAll checks the media binaries, the ffmpeg version banner and the
// configured directories, in that order.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result
	for _, lookup := range deps.Locate(deps.Media(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath)...) {
		switch {
		case !lookup.Found():
			results = append(results, Result{Name: lookup.Name, Detail: lookup.Error, Optional: lookup.Optional})
		case lookup.Name == "FFmpeg":
			results = append(results, CheckFFmpegVersion(ctx, lookup.Name, lookup.Path))
		default:
			results = append(results, pass(lookup.Name, lookup.Path))
		}
	}

	dirs := []struct {
		name     string
		path     string
		optional bool
	}{
		{"Output directory", cfg.Paths.OutputDir, false},
		{"Log directory", cfg.Paths.LogDir, true},
	}
	for _, d := range dirs {
		if strings.TrimSpace(d.path) == "" {
			continue
		}
		r := CheckDirectoryAccess(d.name, d.path)
		r.Optional = d.optional
		results = append(results, r)
	}
	return results
}

// Failures returns the required checks that did not pass.
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r)
		}
	}
	return out
}
