package config

import "time"

// Config holds runtime settings for the CameYa CLI.
//
// Fields:
//   - APIBaseURL: base URL of the CameYa backend.
//   - DatabaseDSN: SQLite file holding the persisted session.
//   - RequestTimeout: per-request timeout for backend calls.
//   - SessionTTL: how long a persisted session is trusted; 0 never expires.
//   - LogLevel, LogFormat: slog level name and handler ("text" or "json").
//   - PageSize: jobs per page of the feed.
type Config struct {
	APIBaseURL     string
	DatabaseDSN    string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	LogLevel       string
	LogFormat      string
	PageSize       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "cameya.db"
	c.RequestTimeout = 10 * time.Second
	c.SessionTTL = 24 * time.Hour
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.PageSize = 12
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
