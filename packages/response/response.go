// Package response turns an HTTP response into the text block xdiff prints
// and compares:
//
//	HTTP/1.1 200 OK
//	content-type: application/json
//	<one line per header value, names lowercased and sorted>
//
//	<body>
//
// JSON bodies are pretty printed so that a changed field shows up on its own
// line in a diff.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kyrosle/xdiff/packages/core/profile"
	"github.com/kyrosle/xdiff/packages/errdef"
	xhttp "github.com/kyrosle/xdiff/packages/http"
)

// Normalize renders resp with the fields named by p left out.
func Normalize(resp *xhttp.Response, p profile.ResponseProfile) (string, error) {
	body, err := BodyText(resp, p.SkipBody)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(StatusText(resp))
	b.WriteByte('\n')
	b.WriteString(HeaderText(resp, p.SkipHeaders))
	b.WriteString(body)
	return b.String(), nil
}

func StatusText(resp *xhttp.Response) string {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	return proto + " " + status
}

// HeaderText renders one "name: value" line per header value followed by a
// blank line. Header names are case-insensitive, so skip matches any case.
func HeaderText(resp *xhttp.Response, skip []string) string {
	skipped := make([]string, len(skip))
	for i, name := range skip {
		skipped[i] = strings.ToLower(name)
	}

	var b strings.Builder
	for _, name := range HeaderKeys(resp) {
		if slices.Contains(skipped, name) {
			continue
		}
		for _, v := range resp.Headers.Values(name) {
			fmt.Fprintf(&b, "%s: %s\n", name, v)
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// HeaderKeys returns the lowercased header names of resp, sorted.
func HeaderKeys(resp *xhttp.Response) []string {
	keys := make([]string, 0, len(resp.Headers))
	for k := range resp.Headers {
		keys = append(keys, strings.ToLower(k))
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// BodyText returns the body as text. A JSON body is parsed, stripped of the
// top-level keys in skip when it is an object, and pretty printed; other
// bodies are returned unchanged.
func BodyText(resp *xhttp.Response, skip []string) (string, error) {
	if !resp.IsJSON() || len(bytes.TrimSpace(resp.Body)) == 0 {
		return resp.BodyString(), nil
	}
	return FilterJSON(resp.Body, skip)
}

// FilterJSON removes the keys in skip from a JSON object and pretty prints
// the result with two-space indentation. Arrays and scalars cannot be
// filtered and are only reformatted.
func FilterJSON(data []byte, skip []string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errdef.New(errdef.CodeResponseParse, "response body is not valid json")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", errdef.Wrap(errdef.CodeResponseParse, err, "decode response body")
	}

	if obj, ok := v.(map[string]any); ok {
		for _, k := range skip {
			delete(obj, k)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", errdef.Wrap(errdef.CodeResponseParse, err, "encode response body")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
