package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/posclient/internal/flagx"
	"github.com/dmitrijs2005/posclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields are
// pointers so that keys missing from the file keep their earlier values.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DebugMode      *bool           `json:"debug_mode"`
	StoragePath    *string         `json:"storage_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	MetricsAddr    *string         `json:"metrics_addr"`
}

// parseJson overlays cfg with the file named by -c or -config in args. It
// panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DebugMode != nil {
		cfg.DebugMode = *jc.DebugMode
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
}
