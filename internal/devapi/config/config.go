// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CameYa development backend.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of session tokens.
//   - VerifyTokenValidityDuration: lifetime of email verification tokens.
//   - LogLevel / LogFormat: zerolog level and "json" or "console" output.
//   - SeedJobs: how many sample jobs to publish at startup.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	TokenValidityDuration       time.Duration
	VerifyTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
	SeedJobs                    int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.VerifyTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.SeedJobs = 30
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
