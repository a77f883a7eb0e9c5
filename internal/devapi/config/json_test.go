package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinkoRobi2/CameYa-sub001/internal/flagx"
)

func writeTempJSON(t *testing.T, dir string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnv, "")

	dir := t.TempDir()

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, dir, map[string]any{
			"api_base_url":                          "ignored by the backend",
			"devapi_endpoint_addr":                  "127.0.0.1:9000",
			"devapi_secret_key":                     "my_secret_key",
			"devapi_token_validity_duration":        "2h",
			"devapi_verify_token_validity_duration": "30m",
			"devapi_log_level":                      "debug",
			"devapi_log_format":                     "json",
			"devapi_seed_jobs":                      0,
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, Config{
			EndpointAddr:                "127.0.0.1:9000",
			SecretKey:                   "my_secret_key",
			TokenValidityDuration:       2 * time.Hour,
			VerifyTokenValidityDuration: 30 * time.Minute,
			LogLevel:                    "debug",
			LogFormat:                   "json",
			SeedJobs:                    0,
		}, *cfg)
	})

	t.Run("absent keys keep values", func(t *testing.T) {
		path := writeTempJSON(t, dir, map[string]any{"devapi_secret_key": "k2"})
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "k2", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.Equal(t, 30, cfg.SeedJobs)
	})

	t.Run("no config → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddr: "defaults:1234"}
		parseJson(cfg)
		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
