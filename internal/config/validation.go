package config

import (
	"fmt"
	"path/filepath"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Bridge.ExecTimeoutSeconds < 1 {
		errs = append(errs, "bridge.exec_timeout_seconds must be >= 1")
	}
	if c.Bridge.GracefulShutdownMs < 1 {
		errs = append(errs, "bridge.graceful_shutdown_ms must be >= 1")
	}
	if c.Bridge.MaxOutputSize < 1 {
		errs = append(errs, "bridge.max_output_size must be >= 1")
	}
	if c.Bridge.StatusCheckTimeoutSeconds < 1 {
		errs = append(errs, "bridge.status_check_timeout_seconds must be >= 1")
	}
	if c.Bridge.ConsentTimeoutSeconds < 1 {
		errs = append(errs, "bridge.consent_timeout_seconds must be >= 1")
	}

	// Resolution overrides must be absolute: the allowlist defends against a
	// compromised working directory, which relative paths would reopen.
	for _, p := range c.Bridge.BinaryCandidates {
		if !filepath.IsAbs(p) {
			errs = append(errs, fmt.Sprintf("bridge.binary_candidates entries must be absolute paths: %s", p))
		}
	}
	for _, p := range c.Bridge.AllowedPrefixes {
		if !filepath.IsAbs(p) {
			errs = append(errs, fmt.Sprintf("bridge.allowed_prefixes entries must be absolute paths: %s", p))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
