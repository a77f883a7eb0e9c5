package config

import (
	"encoding/json"
	"os"

	"github.com/VinkoRobi2/CameYa-sub001/internal/flagx"
	"github.com/VinkoRobi2/CameYa-sub001/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds.
//
// Keys are prefixed with "devapi_" so one file can configure both the client
// and the development backend.
type JsonConfig struct {
	EndpointAddr                string          `json:"devapi_endpoint_addr"`
	SecretKey                   string          `json:"devapi_secret_key"`
	TokenValidityDuration       *timex.Duration `json:"devapi_token_validity_duration"`
	VerifyTokenValidityDuration *timex.Duration `json:"devapi_verify_token_validity_duration"`
	LogLevel                    string          `json:"devapi_log_level"`
	LogFormat                   string          `json:"devapi_log_format"`
	SeedJobs                    *int            `json:"devapi_seed_jobs"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file comes from -c/-config or $CAMEYA_CONFIG; with
// neither set nothing is loaded. Only keys present in the file override
// config. Panics if the file cannot be read or holds invalid JSON.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.VerifyTokenValidityDuration != nil {
		config.VerifyTokenValidityDuration = c.VerifyTokenValidityDuration.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.SeedJobs != nil {
		config.SeedJobs = *c.SeedJobs
	}
}
