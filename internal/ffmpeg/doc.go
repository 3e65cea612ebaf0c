// Package ffmpeg builds ffmpeg command lines for audio extraction, audio
// merging and subtitle embedding, and runs them while turning the time=
// status lines on stderr into progress samples.
//
// Builders are pure functions returning argument slices without the binary
// name. Runner owns process lifetime: it interrupts ffmpeg on context
// cancellation and keeps the last stderr lines for error reports.
package ffmpeg
