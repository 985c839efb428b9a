// Package config loads defaults for the ttc command from an optional JSON5 file and
// the environment. Command-line flags override both.
package config

import (
	"fmt"
	"os"

	"github.com/titanous/json5"
)

// Environment variables consulted by Load.
const (
	EnvConfig   = "TTC_CONFIG"
	EnvStrategy = "TTC_STRATEGY"
	EnvLedger   = "TTC_LEDGER"
	EnvFormat   = "TTC_FORMAT"
)

// Config holds command defaults.
type Config struct {
	// Strategy is the cycle search strategy: "bounded" or "colored".
	Strategy string `json:"strategy"`

	// Format is the output format: "text" or "json".
	Format string `json:"format"`

	// Ledger is the SQLite path runs are recorded in; empty disables recording.
	Ledger string `json:"ledger"`

	// Batch clears all current cycles per round.
	Batch bool `json:"batch"`

	// Verbose enables debug logging of the cycle search.
	Verbose bool `json:"verbose"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Strategy: "bounded",
		Format:   "text",
	}
}

// ResolvePath returns flagPath if set, otherwise $TTC_CONFIG (possibly empty).
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvConfig)
}

// Load returns the defaults, overlaid with the JSON5 file at path (skipped when
// path is empty), overlaid with environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = json5.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStrategy); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv(EnvLedger); v != "" {
		c.Ledger = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
}
