package profile

import (
	"net/http"
	neturl "net/url"
	"slices"
	"strings"

	"golang.org/x/net/http/httpguts"
	"gopkg.in/yaml.v3"

	"github.com/kyrosle/xdiff/packages/core/args"
	"github.com/kyrosle/xdiff/packages/errdef"
)

const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// RequestProfile is a declarative template for one HTTP request. The URL is
// stored without a query string; query parameters live in Params.
type RequestProfile struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Params  map[string]any    `yaml:"params,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    map[string]any    `yaml:"body,omitempty"`
}

// Resolved is a profile with the override set applied, ready to send.
type Resolved struct {
	Method  string
	URL     string
	Headers http.Header
	Query   map[string]any
	Body    string
}

func NewRequestProfile(method, url string) *RequestProfile {
	return &RequestProfile{
		Method: method,
		URL:    url,
	}
}

func (p *RequestProfile) UnmarshalYAML(node *yaml.Node) error {
	type plain RequestProfile
	raw := plain{Method: http.MethodGet}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = RequestProfile(raw)
	return nil
}

// HTTPMethod returns the uppercased method, GET when unset.
func (p *RequestProfile) HTTPMethod() string {
	if p.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(p.Method)
}

// ParseURL builds a GET profile from a full URL. The query string is moved
// into Params, with values coerced the same way as command line overrides.
// Numbers are stored as int64 or float64 so the profile marshals to YAML
// with bare numeric values.
func ParseURL(raw string) (*RequestProfile, error) {
	u, err := parseAbsoluteURL(raw)
	if err != nil {
		return nil, err
	}

	var params map[string]any
	for k, vs := range u.Query() {
		if len(vs) == 0 {
			continue
		}
		if params == nil {
			params = make(map[string]any)
		}
		params[k] = plainNumbers(Coerce(vs[len(vs)-1]))
	}
	u.RawQuery = ""
	u.ForceQuery = false

	p := NewRequestProfile(http.MethodGet, u.String())
	p.Params = params
	return p, nil
}

// Validate checks the parts of a profile that the YAML types cannot.
func (p *RequestProfile) Validate() error {
	if !httpguts.ValidHeaderFieldName(p.HTTPMethod()) {
		return errdef.New(errdef.CodeValidation, "invalid method %q", p.Method)
	}
	if _, err := parseAbsoluteURL(p.URL); err != nil {
		return errdef.Wrap(errdef.CodeValidation, err, "")
	}
	for k, v := range p.Headers {
		if err := checkHeader(k, v); err != nil {
			return errdef.Wrap(errdef.CodeValidation, err, "")
		}
	}
	return nil
}

// Generate layers a onto the profile and serialises the body according to
// the resolved Content-Type. The profile itself is never modified.
func (p *RequestProfile) Generate(a args.Args) (*Resolved, error) {
	headers := make(http.Header, len(p.Headers)+len(a.Headers)+1)
	for _, k := range sortedKeys(p.Headers) {
		if err := checkHeader(k, p.Headers[k]); err != nil {
			return nil, err
		}
		headers.Set(k, p.Headers[k])
	}
	for _, h := range a.Headers {
		if err := checkHeader(h.Key, h.Value); err != nil {
			return nil, err
		}
		headers.Set(h.Key, h.Value)
	}
	if headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", ContentTypeJSON)
	}

	query := p.resolveQuery(a)
	body := cloneObject(p.Body)
	for _, kv := range a.Body {
		body[kv.Key] = Coerce(kv.Value)
	}

	u, err := p.buildURL(query)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Method:  p.HTTPMethod(),
		URL:     u,
		Headers: headers,
		Query:   query,
	}

	switch ct := MediaType(headers.Get("Content-Type")); ct {
	case ContentTypeJSON:
		s, err := marshalJSON(body)
		if err != nil {
			return nil, errdef.Wrap(errdef.CodeRequestBuild, err, "encode json body")
		}
		r.Body = s
	case ContentTypeForm, ContentTypeMultipart:
		r.Body = EncodeValues(body).Encode()
	default:
		return nil, errdef.New(errdef.CodeRequestBuild, "unsupported content-type: %s", ct)
	}
	return r, nil
}

// ResolvedURL returns the URL with the query overrides applied. It does not
// look at headers or body, so it works for any content type.
func (p *RequestProfile) ResolvedURL(a args.Args) (string, error) {
	return p.buildURL(p.resolveQuery(a))
}

func (p *RequestProfile) resolveQuery(a args.Args) map[string]any {
	query := cloneObject(p.Params)
	for _, kv := range a.Query {
		query[kv.Key] = Coerce(kv.Value)
	}
	return query
}

func (p *RequestProfile) buildURL(query map[string]any) (string, error) {
	u, err := parseAbsoluteURL(p.URL)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return u.String(), nil
	}
	vals := u.Query()
	for k, vs := range EncodeValues(query) {
		vals[k] = vs
	}
	u.RawQuery = vals.Encode()
	return u.String(), nil
}

func parseAbsoluteURL(raw string) (*neturl.URL, error) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeRequestBuild, err, "invalid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errdef.New(errdef.CodeRequestBuild, "unsupported url scheme %q in %s (only http and https are allowed)", u.Scheme, raw)
	}
	if u.Host == "" {
		return nil, errdef.New(errdef.CodeRequestBuild, "url must have a host: %s", raw)
	}
	return u, nil
}

func checkHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return errdef.New(errdef.CodeRequestBuild, "invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return errdef.New(errdef.CodeRequestBuild, "invalid value for header %s: %q", name, value)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
