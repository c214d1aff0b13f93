// Package args parses the -e override tokens given on the command line.
//
// A token is key=value. The first character of the key picks the target:
//
//	%key=value   header override (%key:value is accepted too)
//	@key=value   body override
//	key=value    query override, key must start with a letter
//
// Order within each bucket follows the input and duplicates are kept; the
// merge step decides precedence.
package args

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kyrosle/xdiff/packages/errdef"
)

type Kind int

const (
	Query Kind = iota
	Header
	Body
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case Body:
		return "body"
	default:
		return "query"
	}
}

type KeyVal struct {
	Kind  Kind
	Key   string
	Value string
}

type Pair struct {
	Key   string
	Value string
}

// Args is the runtime override set for one invocation.
type Args struct {
	Headers []Pair
	Query   []Pair
	Body    []Pair
}

func (a Args) IsEmpty() bool {
	return len(a.Headers) == 0 && len(a.Query) == 0 && len(a.Body) == 0
}

// ParseKeyVal classifies a single override token.
func ParseKeyVal(s string) (KeyVal, error) {
	seps := "="
	if strings.HasPrefix(s, "%") {
		seps = "=:"
	}
	idx := strings.IndexAny(s, seps)
	if idx < 0 {
		return KeyVal{}, errdef.New(errdef.CodeUsage, "invalid key value pair: %s", s)
	}

	key := strings.TrimSpace(s[:idx])
	value := strings.TrimSpace(s[idx+1:])

	first, size := utf8.DecodeRuneInString(key)
	switch {
	case first == '%':
		return newKeyVal(Header, key[size:], value, s)
	case first == '@':
		return newKeyVal(Body, key[size:], value, s)
	case unicode.IsLetter(first):
		return newKeyVal(Query, key, value, s)
	default:
		return KeyVal{}, errdef.New(errdef.CodeUsage, "invalid key value pair: %s", s)
	}
}

func newKeyVal(kind Kind, key, value, token string) (KeyVal, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return KeyVal{}, errdef.New(errdef.CodeUsage, "invalid key value pair: %s (empty %s key)", token, kind)
	}
	return KeyVal{Kind: kind, Key: key, Value: value}, nil
}

// Parse classifies every token, stopping at the first malformed one.
func Parse(tokens []string) (Args, error) {
	kvs := make([]KeyVal, 0, len(tokens))
	for _, token := range tokens {
		kv, err := ParseKeyVal(token)
		if err != nil {
			return Args{}, err
		}
		kvs = append(kvs, kv)
	}
	return FromKeyVals(kvs), nil
}

func FromKeyVals(kvs []KeyVal) Args {
	var a Args
	for _, kv := range kvs {
		p := Pair{Key: kv.Key, Value: kv.Value}
		switch kv.Kind {
		case Header:
			a.Headers = append(a.Headers, p)
		case Body:
			a.Body = append(a.Body, p)
		default:
			a.Query = append(a.Query, p)
		}
	}
	return a
}
