// Package config assembles the runtime settings of the HRM CLI from
// defaults, an optional .env file, an optional JSON config file, and
// command-line flags, in that order of precedence (later wins).
package config

import "time"

// Config holds runtime settings for the HRM CLI.
//
// Fields:
//   - APIBaseURL: base URL of the HRM REST backend, without trailing slash.
//   - RequestTimeout: client-side deadline applied to every API call.
//   - LocalDBPath: path of the SQLite file backing local storage.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LocalDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8282"
	c.RequestTimeout = 15 * time.Second
	c.LocalDBPath = "hrm.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON config
// file, and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
