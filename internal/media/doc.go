// Package media classifies the files echomux works with and turns the raw
// path lists handed over by the CLI (files and folders, in any mix) into
// ordered, deduplicated File lists.
//
// The ffprobe subpackage wraps the external ffprobe binary for the stream
// counts and durations that command building and progress reporting need.
package media
