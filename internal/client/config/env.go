package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	EnvServerBaseURL  = "BOOKY_API_URL"
	EnvRequestTimeout = "BOOKY_REQUEST_TIMEOUT"
	EnvStoragePath    = "BOOKY_STORAGE"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "BOOKY_LOG_FORMAT"
)

// parseEnv loads an optional .env file from the working directory (values
// already present in the environment win) and overlays the known variables.
// A malformed timeout is ignored and the previous value is kept.
func parseEnv(cfg *Config, files ...string) {
	_ = godotenv.Load(files...)

	if v, ok := os.LookupEnv(EnvServerBaseURL); ok && v != "" {
		cfg.ServerBaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v, ok := os.LookupEnv(EnvStoragePath); ok {
		cfg.StoragePath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
}
