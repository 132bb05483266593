// Package flagx lets several independent flag sets share one command line.
// Each configuration stage keeps only the flags it owns and parses them with
// its own flag.FlagSet, so unknown flags never abort the program.
package flagx

import (
	"flag"
	"strings"
)

// Set names the flags a stage owns. Names are written without dashes;
// "-x" and "--x" on the command line both match "x".
type Set struct {
	// Value flags take an argument, either separately ("-a host") or inline
	// ("-a=host").
	Value []string
	// Bool flags never consume the following argument ("-d", "-d=false").
	Bool []string
}

func flagName(arg string) (name string, inline bool) {
	name = strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true
	}
	return name, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FilterArgs returns the subset of args that belongs to set, in the original
// order. A value flag followed by something that does not look like a flag
// keeps that argument as its value. The result is never nil.
func FilterArgs(args []string, set Set) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}

		name, inline := flagName(arg)

		switch {
		case contains(set.Bool, name):
			filtered = append(filtered, arg)
		case contains(set.Value, name):
			filtered = append(filtered, arg)
			if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Set{Value: []string{"c", "config"}}))

	return path
}
