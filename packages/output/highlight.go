package output

import (
	"io"

	"github.com/alecthomas/chroma/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// Highlight writes source coloured for a 256-colour terminal. lexer is a
// chroma lexer name such as "json" or "yaml".
func Highlight(w io.Writer, source, lexer string) error {
	return quick.Highlight(w, source, lexer, highlightFormatter, highlightStyle)
}
