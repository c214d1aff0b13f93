package http

import (
	"net/http"
)

// Request is a fully resolved request: the URL already carries its query
// string and Body is already serialised.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    string
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method:  method,
		URL:     requestURL,
		Headers: make(http.Header),
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers.Set(key, value)
	return r
}

func (r *Request) SetHeaders(h http.Header) *Request {
	for k, vs := range h {
		r.Headers[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	return r
}
