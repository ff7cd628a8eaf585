package config

import (
	"fmt"
	"os"
	"time"
)

// Settings backends understood by the CLI.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds runtime settings for the docpublish CLI.
//
// Fields:
//   - VaultDir: root of the document tree the commands operate on.
//   - DataDir: private directory for the persisted publisher settings.
//   - SettingsBackend: "json" (data.json) or "sqlite" (data.db).
//   - RequestTimeout: upper bound for one publish request.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	VaultDir        string
	DataDir         string
	SettingsBackend string
	RequestTimeout  time.Duration
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VaultDir = "."
	c.DataDir = ".docpublish"
	c.SettingsBackend = BackendJSON
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// Validate rejects values no later stage can work with.
func (c *Config) Validate() error {
	switch c.SettingsBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown settings backend %q", c.SettingsBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.VaultDir == "" {
		return fmt.Errorf("vault directory is empty")
	}
	return nil
}

// LoadConfig builds a Config from the process arguments. See Load.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment, a JSON file (if requested) and command-line flags. Later
// sources take precedence over earlier ones. Invalid input panics.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
