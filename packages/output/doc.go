// Package output renders diffs, responses and generated profiles.
//
// The console Printer is told once whether it writes to an interactive
// terminal; only then does it colour diff lines and highlight YAML and
// JSON with chroma. The JSON formatter emits one document per result for
// scripts and CI.
package output
