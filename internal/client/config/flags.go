package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// handled here are passed to the flag set, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-s", "-p", "-t", "-l"})

	fs := flag.NewFlagSet("crm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "u", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "session storage driver (sqlite, bolt, memory)")
	fs.StringVar(&cfg.StatePath, "p", cfg.StatePath, "session storage file path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
