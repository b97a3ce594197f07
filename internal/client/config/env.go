package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first, if present; a
// missing file is not an error. Recognized variables:
//
//	HRM_API_URL   base URL of the backend
//	HRM_TIMEOUT   request timeout, Go duration syntax ("15s")
//	HRM_DB_PATH   local SQLite database path
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("HRM_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("HRM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("HRM_DB_PATH"); v != "" {
		cfg.LocalDBPath = v
	}
}
