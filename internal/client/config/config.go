package config

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Config holds runtime settings for the POS client.
//
// Units: RequestTimeout is a time.Duration; RateLimit is requests per second,
// 0 meaning unlimited.
type Config struct {
	APIBaseURL     string
	DebugMode      bool
	StoragePath    string
	RequestTimeout time.Duration
	RateLimit      float64
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000/api/"
	c.DebugMode = false
	c.StoragePath = "session.db"
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 0
	c.MetricsAddr = ""
}

// Validate reports the first invalid field of each kind.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.StoragePath, validation.Required),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
	)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
