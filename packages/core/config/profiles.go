package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/kyrosle/xdiff/packages/core/profile"
	"github.com/kyrosle/xdiff/packages/errdef"
)

// Validator is implemented by both profile collections.
type Validator interface {
	Validate() error
}

// DiffConfig maps profile names to request pairs. In YAML it is the
// top-level mapping itself.
type DiffConfig struct {
	Profiles map[string]*profile.DiffProfile
}

// RequestConfig maps profile names to single requests.
type RequestConfig struct {
	Profiles map[string]*profile.RequestProfile
}

func NewDiffConfig(profiles map[string]*profile.DiffProfile) *DiffConfig {
	return &DiffConfig{Profiles: profiles}
}

func NewRequestConfig(profiles map[string]*profile.RequestProfile) *RequestConfig {
	return &RequestConfig{Profiles: profiles}
}

// LoadDiffConfig reads and validates a diff profile file.
func LoadDiffConfig(path string) (*DiffConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDiffConfig(data)
}

// LoadRequestConfig reads and validates a request profile file.
func LoadRequestConfig(path string) (*RequestConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRequestConfig(data)
}

func ParseDiffConfig(data []byte) (*DiffConfig, error) {
	c := &DiffConfig{}
	if err := parse(data, diffSchema, &c.Profiles, c); err != nil {
		return nil, err
	}
	return c, nil
}

func ParseRequestConfig(data []byte) (*RequestConfig, error) {
	c := &RequestConfig{}
	if err := parse(data, requestSchema, &c.Profiles, c); err != nil {
		return nil, err
	}
	return c, nil
}

// parse decodes data in three passes: generic YAML for the shape check,
// typed YAML into profiles, then the profile-level Validate.
func parse(data []byte, schemaDef string, profiles any, v Validator) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "parse yaml")
	}

	schema, err := compileSchema(schemaDef)
	if err != nil {
		return err
	}
	for _, name := range sortedNames(raw) {
		if err := validateShape(schema, name, raw[name]); err != nil {
			return err
		}
	}

	if err := yaml.Unmarshal(data, profiles); err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "parse yaml")
	}
	return v.Validate()
}

func (c *DiffConfig) Validate() error {
	for _, name := range sortedNames(c.Profiles) {
		if err := c.Profiles[name].Validate(); err != nil {
			return fmt.Errorf("failed to validate profile: %s: %w", name, err)
		}
	}
	return nil
}

func (c *RequestConfig) Validate() error {
	for _, name := range sortedNames(c.Profiles) {
		if err := c.Profiles[name].Validate(); err != nil {
			return fmt.Errorf("failed to validate profile: %s: %w", name, err)
		}
	}
	return nil
}

func (c *DiffConfig) GetProfile(name string) (*profile.DiffProfile, bool) {
	p, ok := c.Profiles[name]
	return p, ok
}

func (c *RequestConfig) GetProfile(name string) (*profile.RequestProfile, bool) {
	p, ok := c.Profiles[name]
	return p, ok
}

func (c *DiffConfig) Names() []string {
	return sortedNames(c.Profiles)
}

func (c *RequestConfig) Names() []string {
	return sortedNames(c.Profiles)
}

func (c *DiffConfig) MarshalYAML() (any, error) {
	return c.Profiles, nil
}

func (c *RequestConfig) MarshalYAML() (any, error) {
	return c.Profiles, nil
}

// ProfileNotFound reports a name missing from the file at path.
func ProfileNotFound(name, path string) error {
	return errdef.New(errdef.CodeProfileNotFound, "profile %s not found in config file %s", name, path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "read config")
	}
	return data, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
