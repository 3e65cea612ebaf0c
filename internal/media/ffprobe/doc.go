// Package ffprobe runs the ffprobe binary and decodes its JSON output.
//
// Jobs read two things from it: stream counts per type, so merged audio and
// subtitle tracks get their metadata at the right output index, and the
// container duration, which turns ffmpeg's time= progress into a fraction.
package ffprobe
