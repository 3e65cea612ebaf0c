package rename

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// ApplyOptions controls which rows of a preview are acted on.
type ApplyOptions struct {
	// Overwrite allows rows whose only problem is an existing target file.
	Overwrite bool
	// IncludeUndetected renames rows without season/episode numbering too.
	IncludeUndetected bool
	Logger *slog.Logger
	// Rename and Stat default to os.Rename and os.Stat.
	Rename func(oldPath, newPath string) error
	Stat   func(string) (fs.FileInfo, error)
}

// Skip records a row that was not renamed and why.
type Skip struct {
	Row    Row    `json:"row"`
	Reason string `json:"reason"`
}

// Failure records a rename that was attempted and failed.
type Failure struct {
	Row   Row    `json:"row"`
	Error string `json:"error"`
}

// Result summarises an Apply run.
type Result struct {
	Renamed []Row     `json:"renamed"`
	Skipped []Skip    `json:"skipped,omitempty"`
	Failed  []Failure `json:"failed,omitempty"`
}

// Apply renames the files of preview in row order. Individual failures are
// collected in the result and do not stop the batch; only context
// cancellation returns an error.
func Apply(ctx context.Context, preview Preview, opts ApplyOptions) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rename := opts.Rename
	if rename == nil {
		rename = os.Rename
	}
	stat := opts.Stat
	if stat == nil {
		stat = os.Stat
	}

	var result Result
	for _, row := range preview.Rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if reason := skipReason(row, opts); reason != "" {
			result.Skipped = append(result.Skipped, Skip{Row: row, Reason: reason})
			logger.Debug("rename skipped", slog.String("source", row.Source), slog.String("reason", reason))
			continue
		}
		if !opts.Overwrite {
			if _, err := stat(row.TargetPath); err == nil {
				result.Skipped = append(result.Skipped, Skip{Row: row, Reason: "target appeared after planning"})
				logger.Warn("rename target appeared after planning",
					slog.String("source", row.Source),
					slog.String("target", row.TargetPath),
					slog.String("event_type", "rename_target_exists"),
				)
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				result.Failed = append(result.Failed, Failure{Row: row, Error: err.Error()})
				continue
			}
		}
		if err := rename(row.Source, row.TargetPath); err != nil {
			result.Failed = append(result.Failed, Failure{Row: row, Error: err.Error()})
			logger.Warn("rename failed",
				slog.String("source", row.Source),
				slog.String("target", row.TargetPath),
				slog.String("error", err.Error()),
				slog.String("event_type", "rename_failed"),
				slog.String("error_hint", "check permissions on the directory"),
			)
			continue
		}
		result.Renamed = append(result.Renamed, row)
		logger.Info("renamed", slog.String("source", row.Source), slog.String("target", row.Target))
	}
	return result, nil
}

func skipReason(row Row, opts ApplyOptions) string {
	switch {
	case row.Unchanged:
		return "name unchanged"
	case row.Undetected && !opts.IncludeUndetected:
		return "season/episode not detected"
	case row.Collision && !(row.Exists && opts.Overwrite):
		if row.Reason != "" {
			return row.Reason
		}
		return "collision"
	}
	return ""
}
