package cmd

import (
	"github.com/kyrosle/xdiff/packages/errdef"
)

// Exit codes for the xdiff and xreq CLIs
const (
	// ExitSuccess indicates the run completed, whether or not the responses differ
	ExitSuccess = 0

	// ExitFailure indicates any failure without a more specific code
	ExitFailure = 1

	// ExitParseError indicates a response body that could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates an unreadable, malformed or invalid profile file
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch errdef.CodeOf(err) {
	case errdef.CodeConfig, errdef.CodeValidation, errdef.CodeProfileNotFound:
		return ExitConfigError
	case errdef.CodeResponseParse:
		return ExitParseError
	case errdef.CodeNetwork:
		return ExitNetworkError
	case errdef.CodeUsage:
		return ExitUsageError
	default:
		return ExitFailure
	}
}
