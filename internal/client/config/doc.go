// Package config loads runtime configuration for the docpublish CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables DOCPUBLISH_*, optionally seeded from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-v string     vault directory (default ".")
//	-d string     settings data directory (default ".docpublish")
//	-s string     settings backend, json or sqlite (default json)
//	-t duration   publish request timeout (default 30s)
//	-l string     log level (default info)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "vault_dir": "~/notes",
//	  "data_dir": "~/.docpublish",
//	  "settings_backend": "sqlite",
//	  "request_timeout": "10s",
//	  "log_level": "debug"
//	}
//
// Malformed input panics at startup.
package config
