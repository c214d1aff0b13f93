// Package prompt implements the small terminal prompts used by the parse
// command: a single-line text input and a checkbox list.
package prompt
