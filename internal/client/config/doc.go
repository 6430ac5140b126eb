// Package config loads runtime configuration for the CRM CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or CRM_CONFIG.
//  3. Environment variables (CRM_BACKEND_URL, CRM_STORAGE, CRM_STATE_PATH,
//     CRM_REQUEST_TIMEOUT, CRM_LOG_LEVEL, CRM_STATE_PASSPHRASE).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string   backend base URL
//	-s string   session storage driver: sqlite, bolt or memory
//	-p string   session storage file path
//	-t int      per-request timeout in seconds (0 = transport default)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "backend_url": "http://localhost:5000",
//	  "storage": "sqlite",
//	  "state_path": "crm.db",
//	  "request_timeout": "30s",
//	  "log_level": "info"
//	}
//
// The state passphrase is read only from the environment so it never lands
// in a config file or shell history.
package config
