package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/crmkeeper/internal/flagx"
	"github.com/dmitrijs2005/crmkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only overrides
// what it names.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	Storage        *string         `json:"storage"`
	StatePath      *string         `json:"state_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// or CRM_CONFIG. No file, no changes.
func parseJson(cfg *Config, args []string, lookupEnv func(string) (string, bool)) error {
	path := flagx.ConfigFile(args, lookupEnv)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BackendURL != nil {
		cfg.BackendURL = *jc.BackendURL
	}
	if jc.Storage != nil {
		cfg.Storage = *jc.Storage
	}
	if jc.StatePath != nil {
		cfg.StatePath = *jc.StatePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
