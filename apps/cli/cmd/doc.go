// Package cmd implements the xdiff and xreq CLIs using Cobra.
//
// Both binaries share one command set:
//   - run: Send a profile and print the diff (xdiff) or the response (xreq)
//   - parse: Build a profile interactively from URLs
//   - validate: Check the profile file without sending anything
//   - list: Show the profiles in the file
//   - init: Write an example profile file
//   - version: Show version information
package cmd
