// Package config loads runtime configuration for the POS client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. POS_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-d          debug mode
//	-s string   session storage file
//	-t int      request timeout (seconds)
//	-r float    rate limit (requests per second)
//	-m string   metrics listen address
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "15s" or integer nanoseconds. Missing keys are left untouched:
//
//	{
//	  "api_base_url": "https://pos.example.org/api/",
//	  "debug_mode": false,
//	  "storage_path": "session.db",
//	  "request_timeout": "15s",
//	  "rate_limit": 5,
//	  "metrics_addr": ":9100"
//	}
//
// Call (*Config).Validate before use.
package config
