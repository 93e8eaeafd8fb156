package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Bridge BridgeConfig `json:"bridge"`
}

type BridgeConfig struct {
	// Helper execution
	ExecTimeoutSeconds int   `json:"exec_timeout_seconds"` // Default: 30
	GracefulShutdownMs int   `json:"graceful_shutdown_ms"` // Default: 2000
	MaxOutputSize      int64 `json:"max_output_size"`      // Default: 1 * 1024 * 1024 (1MB)

	// Permission status checks run under a shorter, independent timeout.
	StatusCheckTimeoutSeconds int `json:"status_check_timeout_seconds"` // Default: 10

	// Consent prompts block on user interaction, so they get their own
	// (much longer) bound.
	ConsentTimeoutSeconds int `json:"consent_timeout_seconds"` // Default: 120

	// Optional overrides for helper binary resolution. Empty slices keep the
	// compiled-in candidates and allowlist.
	BinaryCandidates []string `json:"binary_candidates"`
	AllowedPrefixes  []string `json:"allowed_prefixes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bridge: BridgeConfig{
			ExecTimeoutSeconds:        30,
			GracefulShutdownMs:        2000,
			MaxOutputSize:             1 * 1024 * 1024,
			StatusCheckTimeoutSeconds: 10,
			ConsentTimeoutSeconds:     120,
		},
	}
}
