package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Storage drivers understood by the CLI.
const (
	StorageSQLite = "sqlite"
	StorageBolt   = "bolt"
	StorageMemory = "memory"
)

// Config holds runtime settings for the CRM CLI.
type Config struct {
	BackendURL      string
	Storage         string
	StatePath       string
	RequestTimeout  time.Duration
	LogLevel        string
	StatePassphrase string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:5000"
	c.Storage = StorageSQLite
	c.StatePath = "crm.db"
	c.RequestTimeout = 0
	c.LogLevel = "info"
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url %q", c.BackendURL)
	}
	switch c.Storage {
	case StorageSQLite, StorageBolt:
		if c.StatePath == "" {
			return fmt.Errorf("storage %q needs a state path", c.Storage)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// Load builds a Config from defaults, the JSON file, the environment and
// args (without the program name), in that order.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}
