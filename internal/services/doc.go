// Package services defines the small set of helpers shared by the job
// runner, the rename planner and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, job kinds and the file being
//     processed so log lines can be correlated.
//   - Structured error markers plus the Wrap helper, and the mapping from a
//     marker to the process exit code the CLI reports.
package services
