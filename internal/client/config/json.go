package config

import (
	"encoding/json"
	"os"

	"github.com/VinkoRobi2/CameYa-sub001/internal/flagx"
	"github.com/VinkoRobi2/CameYa-sub001/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. Pointer fields tell an
// absent key apart from a zero value.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DatabaseDSN    string          `json:"database_dsn"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	PageSize       int             `json:"page_size"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. The CAMEYA_CONFIG environment variable.
//  3. If both are empty, no JSON is loaded and the function returns.
//
// Only keys present in the file override cfg. Panics on read or unmarshal
// errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
}
