// Package runner drives one invocation end to end.
//
// In diff mode both requests of a profile are validated, resolved with the
// same overrides and sent concurrently; the normalised responses are then
// compared line by line. In single-request mode one profile is sent and
// its response rendered for display.
package runner
