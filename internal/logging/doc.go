// Package logging assembles the slog loggers used by echomux.
//
// Console output is either a compact human format or JSON; when a log
// directory is configured every record is also appended as JSON to
// echomux.log, tagged with a per-invocation session ID. Context helpers tag
// records with the job ID, job kind and file under work so batch output can
// be filtered per pair.
package logging
