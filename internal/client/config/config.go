package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the booky console.
//
// Fields:
//   - ServerBaseURL: base URL of the remote API, including the /api prefix.
//   - RequestTimeout: per-request deadline applied by the request gateway.
//   - StoragePath: sqlite file holding the persisted credential; empty keeps
//     the credential in memory only.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StoragePath    string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.StoragePath = "booky.db"
	// the console shares the terminal with the log, so only warnings show by default
	c.LogLevel = "warn"
	c.LogFormat = "json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and a .env file), a JSON file and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
