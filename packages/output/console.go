package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kyrosle/xdiff/packages/core/runner"
)

// Separator is written before every diff or response.
const Separator = "---"

type Printer struct {
	writer      io.Writer
	interactive bool
}

type PrinterOption func(*Printer)

// NewPrinter returns a printer writing plain text to stdout. Colour and
// highlighting are applied only with WithInteractive(true).
func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.writer = w
	}
}

func WithInteractive(interactive bool) PrinterOption {
	return func(p *Printer) {
		p.interactive = interactive
	}
}

func (p *Printer) color(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if p.interactive {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Diff prints a unified diff after the separator line. An empty diff
// prints the separator alone.
func (p *Printer) Diff(unified string) {
	green := p.color(color.FgGreen)
	red := p.color(color.FgRed)
	cyan := p.color(color.FgCyan)
	bold := p.color(color.Bold)

	fmt.Fprintln(p.writer, Separator)
	if unified == "" {
		return
	}

	for _, line := range strings.SplitAfter(unified, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = bold(text)
		case strings.HasPrefix(text, "+"):
			text = green(text)
		case strings.HasPrefix(text, "-"):
			text = red(text)
		case strings.HasPrefix(text, "@@"):
			text = cyan(text)
		}
		fmt.Fprintln(p.writer, text)
	}
}

func (p *Printer) FormatDiff(_ string, r *runner.DiffResult) {
	p.Diff(r.Diff)
}

func (p *Printer) FormatResponse(_ string, r *runner.RequestResult) {
	p.Response(r)
}

func (p *Printer) FormatError(err error) {
	p.Error(err)
}

// Response prints a single response: the resolved URL, a blank line, then
// the status line, headers and body. Interactive output highlights the
// head as YAML and a JSON body as JSON.
func (p *Printer) Response(r *runner.RequestResult) {
	fmt.Fprintln(p.writer, Separator)
	fmt.Fprintf(p.writer, "Url: %s\n\n", r.URL)

	head := r.Status + "\n" + r.Headers
	if !p.interactive {
		fmt.Fprint(p.writer, head)
		fmt.Fprintln(p.writer, r.Body)
		return
	}

	p.highlight(head, "yaml")
	if r.Response != nil && r.Response.IsJSON() {
		p.highlight(r.Body, "json")
	} else {
		fmt.Fprint(p.writer, r.Body)
	}
	fmt.Fprintln(p.writer)
}

// YAML prints a generated profile file.
func (p *Printer) YAML(doc string) {
	if p.interactive {
		p.highlight(doc, "yaml")
		return
	}
	fmt.Fprint(p.writer, doc)
}

func (p *Printer) Error(err error) {
	red := p.color(color.FgRed)
	fmt.Fprintf(p.writer, "%s %v\n", red("Error:"), err)
}

func (p *Printer) highlight(source, lexer string) {
	if err := Highlight(p.writer, source, lexer); err != nil {
		fmt.Fprint(p.writer, source)
	}
}
