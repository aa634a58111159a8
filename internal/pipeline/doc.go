// Package pipeline runs one stage end to end: it checks the input, resolves
// the output path, builds the engine command, runs the engine against a
// temporary sibling of the output and moves the result into place only when
// the engine succeeded. A failed run never leaves a truncated output behind.
//
// Only one engine process is started per Run, and an exclusive lock on
// "<output>.lock" keeps two processes from writing the same target.
package pipeline
