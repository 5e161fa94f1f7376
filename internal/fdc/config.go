package fdc

import (
	"os"
	"strconv"
)

// Config holds configuration for the FoodData Central lookup client.
type Config struct {
	Endpoint  string
	APIKey    string
	TimeoutMs int
	PageSize  int
}

// DefaultConfig returns a Config with sensible defaults. The public demo key
// is rate-limited but works without registration.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://api.nal.usda.gov/fdc",
		APIKey:    "DEMO_KEY",
		TimeoutMs: 10000,
		PageSize:  25,
	}
}

// LoadConfig reads lookup configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FOODLOG_FDC_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("FOODLOG_FDC_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FOODLOG_FDC_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("FOODLOG_FDC_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	return cfg
}
