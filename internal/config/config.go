// Package config loads the console configuration from the environment, with
// an optional .env file for local use.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full console configuration.
type Config struct {
	API struct {
		// BaseURL is the backend root URL.
		BaseURL string `env:"ADMIN_API_BASE_URL,default=http://localhost:5000"`
		// Timeout bounds each backend call.
		Timeout time.Duration `env:"ADMIN_API_TIMEOUT,default=30s"`
		// RequestsPerSecond paces outgoing calls; requests are delayed,
		// never retried.
		RequestsPerSecond float64 `env:"ADMIN_API_RPS,default=10"`
		// Burst is the rate limiter burst size.
		Burst int `env:"ADMIN_API_BURST,default=5"`
	}

	Log struct {
		// Level is a zerolog level name (debug, info, warn, error).
		Level string `env:"ADMIN_LOG_LEVEL,default=info"`
	}

	Credential struct {
		// Backend selects where the bearer token is kept: keyring or file.
		Backend string `env:"ADMIN_CREDENTIAL_BACKEND,default=keyring"`
		// File overrides the credential file location for the file backend.
		File string `env:"ADMIN_CREDENTIAL_FILE,default="`
	}
}

// Load reads .env when present, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}

	if cfg.API.Timeout <= 0 {
		return Config{}, fmt.Errorf("config: ADMIN_API_TIMEOUT must be positive")
	}
	if cfg.API.RequestsPerSecond <= 0 {
		return Config{}, fmt.Errorf("config: ADMIN_API_RPS must be positive")
	}
	if cfg.API.Burst < 1 {
		return Config{}, fmt.Errorf("config: ADMIN_API_BURST must be at least 1")
	}
	switch cfg.Credential.Backend {
	case "keyring", "file":
	default:
		return Config{}, fmt.Errorf("config: ADMIN_CREDENTIAL_BACKEND must be keyring or file, got %q", cfg.Credential.Backend)
	}
	return cfg, nil
}
