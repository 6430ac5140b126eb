package config

import (
	"fmt"
	"strconv"
	"time"
)

func parseEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	getenv := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	getenv("CRM_BACKEND_URL", &cfg.BackendURL)
	getenv("CRM_STORAGE", &cfg.Storage)
	getenv("CRM_STATE_PATH", &cfg.StatePath)
	getenv("CRM_LOG_LEVEL", &cfg.LogLevel)
	getenv("CRM_STATE_PASSPHRASE", &cfg.StatePassphrase)

	if v, ok := lookupEnv("CRM_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("CRM_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// parseDuration accepts "30s" style values or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return time.Duration(seconds) * time.Second, nil
}
