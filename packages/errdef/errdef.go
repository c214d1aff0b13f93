// Package errdef defines the error categories reported by xdiff.
//
// Every failure that reaches the CLI carries a Code so the command layer can
// pick an exit status without inspecting message text. Context is added with
// fmt.Errorf("...: %w", err) as usual; CodeOf finds the outermost category.
package errdef

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeUnknown Code = iota
	// CodeConfig covers unreadable files, malformed YAML and missing fields.
	CodeConfig
	// CodeValidation covers profiles whose params or body are not objects.
	CodeValidation
	CodeProfileNotFound
	// CodeRequestBuild covers bad header names/values, bad URLs and
	// unsupported content types. No request is sent.
	CodeRequestBuild
	CodeNetwork
	// CodeResponseParse is returned when a body declared as JSON does not parse.
	CodeResponseParse
	CodeDiff
	CodeUsage
)

var codeNames = map[Code]string{
	CodeUnknown:         "unknown",
	CodeConfig:          "config",
	CodeValidation:      "validation",
	CodeProfileNotFound: "profile not found",
	CodeRequestBuild:    "request build",
	CodeNetwork:         "network",
	CodeResponseParse:   "response parse",
	CodeDiff:            "diff",
	CodeUsage:           "usage",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code. A target with a
// message only matches an error carrying that exact message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

func New(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. It returns nil when err is nil.
func Wrap(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of the outermost *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Has reports whether any error in err's chain carries code.
func Has(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}
