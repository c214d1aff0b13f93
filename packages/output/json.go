package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/diff"
)

// JSONDiff is the machine-readable form of one diff run
type JSONDiff struct {
	Profile   string `json:"profile"`
	Identical bool   `json:"identical"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
	Diff      string `json:"diff"`
	Req1      string `json:"req1"`
	Req2      string `json:"req2"`
}

// JSONResponse is the machine-readable form of one single-request run
type JSONResponse struct {
	Profile    string              `json:"profile"`
	URL        string              `json:"url"`
	StatusCode int                 `json:"statusCode"`
	Status     string              `json:"status"`
	Headers    map[string][]string `json:"headers,omitempty"`
	Body       string              `json:"body"`
	Duration   float64             `json:"duration"`
}

// JSONError is written in place of a result when a run fails
type JSONError struct {
	Error string `json:"error"`
}

// JSONFormatter writes one indented JSON document per result
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatDiff(name string, r *runner.DiffResult) {
	added, removed := diff.Stats(r.Diff)
	f.encode(JSONDiff{
		Profile:   name,
		Identical: r.Diff == "",
		Added:     added,
		Removed:   removed,
		Diff:      r.Diff,
		Req1:      r.Text1,
		Req2:      r.Text2,
	})
}

func (f *JSONFormatter) FormatResponse(name string, r *runner.RequestResult) {
	out := JSONResponse{
		Profile: name,
		URL:     r.URL,
		Status:  r.Status,
		Body:    r.Body,
	}
	if r.Response != nil {
		out.StatusCode = r.Response.StatusCode
		out.Headers = r.Response.Headers
		out.Duration = float64(r.Response.Duration.Milliseconds())
	}
	f.encode(out)
}

func (f *JSONFormatter) FormatError(err error) {
	f.encode(JSONError{Error: err.Error()})
}

func (f *JSONFormatter) encode(v any) {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode json output: %v\n", err)
	}
}
