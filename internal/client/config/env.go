package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvVaultDir        = "DOCPUBLISH_VAULT_DIR"
	EnvDataDir         = "DOCPUBLISH_DATA_DIR"
	EnvSettingsBackend = "DOCPUBLISH_SETTINGS_BACKEND"
	EnvRequestTimeout  = "DOCPUBLISH_REQUEST_TIMEOUT"
	EnvLogLevel        = "DOCPUBLISH_LOG_LEVEL"
)

// parseEnv overlays Config with DOCPUBLISH_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over it. Unset or empty variables keep the
// current value, a malformed timeout panics.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.VaultDir = getEnv(EnvVaultDir, cfg.VaultDir)
	cfg.DataDir = getEnv(EnvDataDir, cfg.DataDir)
	cfg.SettingsBackend = getEnv(EnvSettingsBackend, cfg.SettingsBackend)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)

	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
