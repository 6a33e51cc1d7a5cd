// Package config defines service configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and PELE_ environment variables over New.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"strings"
)

// GroupByNone disables aggregation.
const GroupByNone = "none"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPaths lists canonical CSV files loaded at startup.
	DataPaths []string `koanf:"data_paths"`

	// Dedupe drops repeated (player_id, match_id) rows while loading.
	Dedupe bool `koanf:"dedupe"`

	// GroupBy is the default comma-separated group key, or "none".
	GroupBy string `koanf:"group_by"`

	// Standardize enables the 0-100 scale by default.
	Standardize bool `koanf:"standardize"`

	// Weights names the default weight profile.
	Weights string `koanf:"weights"`

	// WeightsFile points at an optional TOML file of weight presets.
	WeightsFile string `koanf:"weights_file"`

	// CacheSize bounds the rating result cache; 0 disables it.
	CacheSize int `koanf:"cache_size"`

	// MaxLimit caps GET /ratings?limit.
	MaxLimit int `koanf:"max_limit"`

	// RateLimitRPS and RateLimitBurst shape per-client request rates.
	// A zero RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New returns a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		Dedupe:         true,
		GroupBy:        "player_id",
		Standardize:    true,
		Weights:        "default",
		CacheSize:      128,
		MaxLimit:       500,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
	}
}

// GroupColumns splits GroupBy into column names. "none" and "" yield an
// empty, non-nil slice meaning row-level output.
func (c *Config) GroupColumns() []string {
	return ParseGroupBy(c.GroupBy)
}

// ParseGroupBy splits a comma-separated group key.
func ParseGroupBy(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, GroupByNone) {
		return []string{}
	}
	var cols []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			cols = append(cols, p)
		}
	}
	if cols == nil {
		return []string{}
	}
	return cols
}
