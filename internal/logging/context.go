package logging

import (
	"context"
	"log/slog"

	"echomux/internal/services"
)

const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldJobID identifies one batch run (extract, merge, embed, rename).
	FieldJobID = "job_id"
	// FieldJobKind carries the batch kind.
	FieldJobKind = "job_kind"
	// FieldFile is the media file currently being processed.
	FieldFile = "file"
	// FieldEventType classifies a record for filtering (e.g. "pair_failed").
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator can take.
	FieldErrorHint = "error_hint"
	// FieldProgressPercent is the overall batch percentage.
	FieldProgressPercent = "progress_percent"
	// FieldProgressStage labels the pair being processed ("3/12").
	FieldProgressStage = "progress_stage"
	// FieldSessionID tags every file record of one CLI invocation.
	FieldSessionID = "session_id"
	// FieldCommand is the CLI command path of the invocation.
	FieldCommand = "command"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.JobIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJobID, id))
	}
	if kind, ok := services.JobKindFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldJobKind, kind))
	}
	if file, ok := services.FileFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFile, file))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
