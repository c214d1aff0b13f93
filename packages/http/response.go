package http

import (
	"mime"
	"net/http"
	"strings"
	"time"
)

type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// MediaType returns the Content-Type without parameters, lowercased.
func (r *Response) MediaType() string {
	ct := r.ContentType()
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func (r *Response) IsJSON() bool {
	return r.MediaType() == "application/json"
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
