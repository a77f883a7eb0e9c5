// Package config loads runtime configuration for the CameYa CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags -c or -config,
//     or the CAMEYA_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   SQLite database file holding the session
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.cameya.ec",
//	  "database_dsn": "/home/me/.cameya.db",
//	  "request_timeout": "10s",
//	  "session_ttl": "24h",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "page_size": 12
//	}
//
// Primary API
//
//   - type Config                     holds the settings above
//   - func LoadConfig() *Config       builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   sets sensible defaults
package config
