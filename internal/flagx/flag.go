// Package flagx helps several independent flag sets share one command line:
// each consumer picks out only the flags it owns before parsing.
package flagx

import (
	"flag"
	"strings"
)

// ConfigFileEnv names the environment variable consulted when no -c/-config
// flag is present.
const ConfigFileEnv = "CRM_CONFIG"

// FilterArgs returns the subset of args that belong to the allowed flags,
// together with their values.
//
// Single and double dash spellings are treated alike, so allowing "-c" also
// keeps "--c". Both "-c value" and "-c=value" forms are recognised; a value
// is only consumed when the next argument does not itself look like a flag.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[flagName(name)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// ConfigFile extracts the JSON config path from args (-c or -config). When
// neither flag is given, lookupEnv is asked for ConfigFileEnv; lookupEnv may
// be nil. An empty string means no config file.
func ConfigFile(args []string, lookupEnv func(string) (string, bool)) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	if path == "" && lookupEnv != nil {
		if v, ok := lookupEnv(ConfigFileEnv); ok {
			path = v
		}
	}
	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
