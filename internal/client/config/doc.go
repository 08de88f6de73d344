// Package config loads runtime configuration for the booky console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file
//     (BOOKY_API_URL, BOOKY_REQUEST_TIMEOUT, BOOKY_STORAGE, LOG_LEVEL,
//     BOOKY_LOG_FORMAT).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the remote API
//	-t int      request timeout (seconds)
//	-s string   credential storage file
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8080/api",
//	  "request_timeout": "10s",
//	  "storage_path": "booky.db",
//	  "log_level": "warn",
//	  "log_format": "json"
//	}
package config
