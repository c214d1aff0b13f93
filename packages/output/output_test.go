package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrosle/xdiff/packages/core/runner"
	"github.com/kyrosle/xdiff/packages/errdef"
	"github.com/kyrosle/xdiff/packages/http"
)

const sampleDiff = "--- req1\n+++ req2\n@@ -1,3 +1,3 @@\n {\n-  \"name\": \"a\"\n+  \"name\": \"b\"\n }\n"

func TestPrinter_Diff_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf))

	p.Diff(sampleDiff)

	assert.Equal(t, "---\n"+sampleDiff, buf.String())
}

func TestPrinter_Diff_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(WithWriter(&buf)).Diff("")
	assert.Equal(t, "---\n", buf.String())
}

func TestPrinter_Diff_Interactive(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithInteractive(true))

	p.Diff(sampleDiff)

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, `-  "name": "a"`)
	assert.Contains(t, out, `+  "name": "b"`)
}

func TestPrinter_Response(t *testing.T) {
	r := &runner.RequestResult{
		URL:      "https://example.com/todos?a=1",
		Status:   "HTTP/1.1 200 OK",
		Headers:  "content-type: application/json\n\n",
		Body:     "{\n  \"id\": 1\n}",
		Response: &http.Response{Headers: map[string][]string{"Content-Type": {"application/json"}}},
	}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(WithWriter(&buf)).Response(r)

		want := "---\nUrl: https://example.com/todos?a=1\n\nHTTP/1.1 200 OK\ncontent-type: application/json\n\n{\n  \"id\": 1\n}\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("interactive", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(WithWriter(&buf), WithInteractive(true)).Response(r)

		assert.Contains(t, buf.String(), "Url: https://example.com/todos?a=1")
		assert.Contains(t, buf.String(), "\x1b[")
	})
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(WithWriter(&buf)).YAML("todo:\n  url: https://example.com/\n")
	assert.Equal(t, "todo:\n  url: https://example.com/\n", buf.String())
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(WithWriter(&buf)).Error(errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestJSONFormatter_FormatDiff(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatDiff("todo", &runner.DiffResult{Text1: "a", Text2: "b", Diff: sampleDiff})

	var got JSONDiff
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "todo", got.Profile)
	assert.False(t, got.Identical)
	assert.Equal(t, 1, got.Added)
	assert.Equal(t, 1, got.Removed)
	assert.Equal(t, sampleDiff, got.Diff)
}

func TestJSONFormatter_FormatResponse(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatResponse("todo", &runner.RequestResult{
		URL:      "https://example.com/",
		Status:   "HTTP/1.1 201 Created",
		Body:     "<b>ok</b>",
		Response: &http.Response{StatusCode: 201},
	})

	var got JSONResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 201, got.StatusCode)
	assert.Equal(t, "<b>ok</b>", got.Body)
	assert.Contains(t, buf.String(), "<b>ok</b>")
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	f, err := NewFormatter("", &buf, false)
	require.NoError(t, err)
	assert.IsType(t, &Printer{}, f)

	f, err = NewFormatter(FormatJSON, &buf, true)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = NewFormatter("xml", &buf, false)
	require.Error(t, err)
	assert.Equal(t, errdef.CodeUsage, errdef.CodeOf(err))
}
