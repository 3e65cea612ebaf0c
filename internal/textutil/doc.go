// Package textutil provides text processing utilities for filename
// comparison and sanitisation.
//
// The primary use cases are:
//   - Folding filenames to lowercase ASCII-ish text so accented and plain
//     spellings compare equal
//   - Computing a longest-common-subsequence similarity ratio in [0,1]
//   - Sanitizing filenames and path segments for safe filesystem use
//
// Everything here is pure and allocation-light so callers can invoke it on
// every preview refresh.
package textutil
