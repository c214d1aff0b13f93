package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/kyrosle/xdiff/packages/errdef"
)

// Settings are tool-wide options that are not part of any profile.
type Settings struct {
	Timeout     int    `json:"timeout,omitempty"` // milliseconds, 0 disables
	ValidateSSL *bool  `json:"validateSSL,omitempty"`
	Proxy       string `json:"proxy,omitempty"`
	NoColor     *bool  `json:"noColor,omitempty"`
	Verbose     *bool  `json:"verbose,omitempty"`
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (s *Settings) GetValidateSSL() bool {
	return getBool(s.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (s *Settings) GetNoColor() bool {
	return getBool(s.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (s *Settings) GetVerbose() bool {
	return getBool(s.Verbose, false)
}

func (s *Settings) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Millisecond
}

// SettingsFilenames contains the possible settings file names
var SettingsFilenames = []string{
	".xdiff.config.json",
	"xdiff.config.json",
	".xdiffrc",
}

// LoadSettings loads settings from the specified path or searches the
// current directory.
func LoadSettings(path string) (*Settings, error) {
	if path != "" {
		return loadSettingsFromFile(path)
	}
	return FindAndLoadSettings(".")
}

// FindAndLoadSettings searches for a settings file in the given directory
func FindAndLoadSettings(dir string) (*Settings, error) {
	for _, filename := range SettingsFilenames {
		settingsPath := filepath.Join(dir, filename)
		if _, err := os.Stat(settingsPath); err == nil {
			return loadSettingsFromFile(settingsPath)
		}
	}

	// Return defaults if no settings file found
	return DefaultSettings(), nil
}

func loadSettingsFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "read settings")
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "parse settings %s", path)
	}

	return settings, nil
}

// Merge merges other into s, with other taking precedence
func (s *Settings) Merge(other *Settings) *Settings {
	if other == nil {
		return s
	}

	result := *s

	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}

	// Boolean flags - only override if explicitly set in other
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}

	return &result
}
