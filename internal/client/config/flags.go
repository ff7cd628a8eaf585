package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/docpublish/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-v string     vault directory
//	-d string     data directory for persisted settings
//	-s string     settings backend: json or sqlite
//	-t duration   publish request timeout, e.g. 10s
//	-l string     log level
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// components (-c) do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-v", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.VaultDir, "v", cfg.VaultDir, "vault directory")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for settings")
	fs.StringVar(&cfg.SettingsBackend, "s", cfg.SettingsBackend, "settings backend (json|sqlite)")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "publish request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
