package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"mime"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Coerce turns an override value into a JSON value. Anything that parses as
// JSON keeps its type ("42" is a number, "true" a boolean, "null" nil);
// everything else is a plain string. It never fails.
func Coerce(s string) any {
	if !gjson.Valid(s) {
		return s
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}
	return v
}

// plainNumbers replaces json.Number values, at any depth, with int64 or
// float64 so that they are written back to YAML as bare numbers.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainNumbers(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainNumbers(item)
		}
		return out
	default:
		return v
	}
}

// EncodeValues flattens a JSON object into form/query values. Scalars are
// rendered as their JSON text with strings unquoted, arrays become repeated
// keys and nested objects use parent[child] keys.
func EncodeValues(obj map[string]any) url.Values {
	vals := url.Values{}
	for k, v := range obj {
		addValue(vals, k, v)
	}
	return vals
}

func addValue(vals url.Values, key string, v any) {
	switch t := v.(type) {
	case nil:
		vals.Add(key, "")
	case string:
		vals.Add(key, t)
	case []any:
		for _, item := range t {
			addValue(vals, key, item)
		}
	case map[string]any:
		for k, item := range t {
			addValue(vals, key+"["+k+"]", item)
		}
	default:
		vals.Add(key, fmt.Sprint(t))
	}
}

// MediaType returns the lowercased media type of a Content-Type value with
// any parameters such as charset removed.
func MediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func cloneObject(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m)
}
