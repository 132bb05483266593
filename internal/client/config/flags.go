package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/posclient/internal/flagx"
)

var ownFlags = flagx.Set{
	Value: []string{"a", "s", "t", "r", "m"},
	Bool:  []string{"d"},
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL
//	-d          debug mode (request tracing)
//	-s string   session storage file
//	-t int      request timeout (seconds)
//	-r float    outbound rate limit (requests per second, 0 = unlimited)
//	-m string   metrics listen address
//
// Only the flags above are kept from args, so other components can own the
// rest of the command line. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.BoolVar(&cfg.DebugMode, "d", cfg.DebugMode, "debug mode")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "session storage file")
	requestTimeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "requests per second, 0 for unlimited")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// an unset -t keeps the timeout from the earlier layers, sub-second values included
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
