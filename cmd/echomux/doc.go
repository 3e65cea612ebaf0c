// Package main hosts the echomux CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into calls on the
// internal packages: companion matching, ffmpeg batches (extract, merge,
// embed), template renames, and configuration scaffolding. It resolves the
// configuration and sets up structured logging once per invocation so
// subcommands only deal with flags and output.
//
// Add behaviour to the internal packages first and surface it here through
// dedicated commands or flags.
package main
