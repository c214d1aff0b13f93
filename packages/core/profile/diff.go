package profile

import (
	"fmt"
	"slices"
	"strings"
)

// ResponseProfile selects the response fields left out of the normalised
// text. Header names match in any case; body paths match exactly.
type ResponseProfile struct {
	SkipHeaders []string `yaml:"skip_headers,omitempty"`
	SkipBody    []string `yaml:"skip_body,omitempty"`
}

func NewResponseProfile(skipHeaders, skipBody []string) ResponseProfile {
	return ResponseProfile{SkipHeaders: skipHeaders, SkipBody: skipBody}
}

// IsZero reports whether the profile filters nothing. yaml.v3 uses it to
// omit a default res block.
func (r ResponseProfile) IsZero() bool {
	return len(r.SkipHeaders) == 0 && len(r.SkipBody) == 0
}

func (r ResponseProfile) Equal(other ResponseProfile) bool {
	return slices.Equal(r.SkipHeaders, other.SkipHeaders) && slices.Equal(r.SkipBody, other.SkipBody)
}

func (r ResponseProfile) SkipsHeader(name string) bool {
	return slices.ContainsFunc(r.SkipHeaders, func(s string) bool {
		return strings.EqualFold(s, name)
	})
}

// DiffProfile pairs two requests with the filter applied to both responses.
type DiffProfile struct {
	Req1 RequestProfile  `yaml:"req1"`
	Req2 RequestProfile  `yaml:"req2"`
	Res  ResponseProfile `yaml:"res,omitempty"`
}

func NewDiffProfile(req1, req2 RequestProfile, res ResponseProfile) *DiffProfile {
	return &DiffProfile{Req1: req1, Req2: req2, Res: res}
}

// Validate checks both requests before anything is sent.
func (d *DiffProfile) Validate() error {
	if err := d.Req1.Validate(); err != nil {
		return fmt.Errorf("req1 failed to validate: %w", err)
	}
	if err := d.Req2.Validate(); err != nil {
		return fmt.Errorf("req2 failed to validate: %w", err)
	}
	return nil
}
