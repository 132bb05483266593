package config

import (
	"os"
	"strconv"
	"time"
)

const (
	envAPIURL         = "POS_API_URL"
	envDebugMode      = "POS_DEBUG_MODE"
	envStoragePath    = "POS_STORAGE_PATH"
	envRequestTimeout = "POS_REQUEST_TIMEOUT"
	envRateLimit      = "POS_RATE_LIMIT"
	envMetricsAddr    = "POS_METRICS_ADDR"
)

// parseEnv overlays cfg with POS_* variables. Unset or unparsable values keep
// the current setting. Debug mode is on only for POS_DEBUG_MODE=1.
func parseEnv(cfg *Config) {
	cfg.APIBaseURL = getEnvString(envAPIURL, cfg.APIBaseURL)
	if v, ok := os.LookupEnv(envDebugMode); ok {
		cfg.DebugMode = v == "1"
	}
	cfg.StoragePath = getEnvString(envStoragePath, cfg.StoragePath)
	cfg.RequestTimeout = getEnvDuration(envRequestTimeout, cfg.RequestTimeout)
	cfg.RateLimit = getEnvFloat(envRateLimit, cfg.RateLimit)
	cfg.MetricsAddr = getEnvString(envMetricsAddr, cfg.MetricsAddr)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// getEnvDuration accepts "15s" style durations or a plain number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	return defaultVal
}
