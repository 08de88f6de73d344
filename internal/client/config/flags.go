package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/booky/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote API
//	-t int      request timeout in seconds
//	-s string   path of the sqlite credential store ("" = memory only)
//	-l string   log level
//
// Only these flags are parsed (see flagx.FilterArgs); a malformed value panics.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the remote API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "credential storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ServerBaseURL = strings.TrimRight(cfg.ServerBaseURL, "/")
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
