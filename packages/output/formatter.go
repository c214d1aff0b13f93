package output

import (
	"io"

	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/errdef"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Formatter renders run results for one output format.
type Formatter interface {
	FormatDiff(name string, r *runner.DiffResult)
	FormatResponse(name string, r *runner.RequestResult)
	FormatError(err error)
}

// NewFormatter picks the formatter for format. interactive only affects
// the console format.
func NewFormatter(format string, w io.Writer, interactive bool) (Formatter, error) {
	switch format {
	case "", FormatConsole:
		return NewPrinter(WithWriter(w), WithInteractive(interactive)), nil
	case FormatJSON:
		return NewJSONFormatter(JSONWithWriter(w)), nil
	default:
		return nil, errdef.New(errdef.CodeUsage, "unknown output format %q (use %s or %s)", format, FormatConsole, FormatJSON)
	}
}
