// Package jobs drives batches of ffmpeg invocations: audio extraction from
// videos, merging matched audio companions into videos, and embedding
// matched subtitles.
//
// A batch holds a process-wide file lock so two echomux processes never
// drive ffmpeg over the same files at once. Each file is inspected with ffprobe for its
// duration and stream layout, then handed to the ffmpeg runner; progress
// is reported as the fraction of the whole batch. Unmatched videos are
// skipped and reported, and the first ffmpeg failure stops the batch unless
// ContinueOnError is set.
package jobs
