package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docpublish/internal/flagx"
	"github.com/dmitrijs2005/docpublish/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only overrides
// what it names.
type JsonConfig struct {
	VaultDir        *string         `json:"vault_dir"`
	DataDir         *string         `json:"data_dir"`
	SettingsBackend *string         `json:"settings_backend"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config in args. Without such a flag nothing happens. Read and
// unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.VaultDir != nil {
		cfg.VaultDir = *jc.VaultDir
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.SettingsBackend != nil {
		cfg.SettingsBackend = *jc.SettingsBackend
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
