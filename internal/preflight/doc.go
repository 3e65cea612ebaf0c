// Package preflight provides readiness checks for the binaries and
// directories echomux depends on.
//
// These checks run in two contexts:
//   - Media commands (extract-audio, merge-audio, embed-subs) call Failures
//     before starting a batch so a missing ffmpeg is reported up front.
//   - The CLI "echomux status" command renders every Result.
package preflight
