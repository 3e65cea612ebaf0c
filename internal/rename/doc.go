// Package rename renders filename templates from extracted episode metadata
// and turns a file list into a reviewable rename plan.
//
// Render is pure and never fails. Plan performs read-only filesystem checks
// (collisions with existing files) and Apply is the only function that
// touches disk. Callers are expected to show the plan before applying it.
package rename
