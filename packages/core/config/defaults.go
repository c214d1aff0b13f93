package config

const (
	// DefaultDiffConfigFile is read by xdiff when --config is not given
	DefaultDiffConfigFile = "./xdiff.yml"
	// DefaultRequestConfigFile is read by xreq when --config is not given
	DefaultRequestConfigFile = "./xreq.yml"
)

// DefaultSettings returns settings with default values
func DefaultSettings() *Settings {
	return &Settings{
		Timeout:     30000, // 30 seconds
		ValidateSSL: BoolPtr(true),
		Proxy:       "",
		NoColor:     BoolPtr(false),
		Verbose:     BoolPtr(false),
	}
}

// IsDefault returns true if the settings match defaults
func (s *Settings) IsDefault() bool {
	defaults := DefaultSettings()
	return s.Timeout == defaults.Timeout &&
		s.GetValidateSSL() == defaults.GetValidateSSL() &&
		s.Proxy == defaults.Proxy &&
		s.GetNoColor() == defaults.GetNoColor() &&
		s.GetVerbose() == defaults.GetVerbose()
}
