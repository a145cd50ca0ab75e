package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Token:   "ghp_test",
		Start:   "2023-01-01",
		End:     "2023-01-31",
		API:     "rest",
		PerPage: 100,
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name           string
		mutate         func(c *Config)
		expectedErrMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "graphql api", mutate: func(c *Config) { c.API = "graphql" }},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, expectedErrMsg: "GITHUB_TOKEN"},
		{name: "missing start", mutate: func(c *Config) { c.Start = "" }, expectedErrMsg: "Start: cannot be blank"},
		{name: "malformed end", mutate: func(c *Config) { c.End = "31/01/2023" }, expectedErrMsg: "End: must be a valid date"},
		{name: "unknown api", mutate: func(c *Config) { c.API = "soap" }, expectedErrMsg: "API: must be a valid value"},
		{name: "page size too large", mutate: func(c *Config) { c.PerPage = 101 }, expectedErrMsg: "PerPage: must be no greater than 100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.expectedErrMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.expectedErrMsg)
			}
		})
	}
}

func TestConfig_DateRange(t *testing.T) {
	cfg := validConfig()
	r, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01..2023-01-31", r.String())

	cfg.Start, cfg.End = cfg.End, cfg.Start
	_, err = cfg.DateRange()
	assert.ErrorContains(t, err, "before start date")
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GITHUB_TOKEN=from-file\n"), 0o600))

	t.Run("reads the file when the variable is unset", func(t *testing.T) {
		t.Setenv(TokenEnv, "")
		require.NoError(t, os.Unsetenv(TokenEnv))

		require.NoError(t, LoadEnv(envFile))
		assert.Equal(t, "from-file", TokenFromEnv())
	})

	t.Run("environment wins over the file", func(t *testing.T) {
		t.Setenv(TokenEnv, "from-env")

		require.NoError(t, LoadEnv(envFile))
		assert.Equal(t, "from-env", TokenFromEnv())
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnv(filepath.Join(dir, "absent.env")))
	})
}

func TestConfig_Validate_MissingTokenIsSentinel(t *testing.T) {
	cfg := validConfig()
	cfg.Token = ""

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.EqualError(t, err, "GITHUB_TOKEN environment variable is not set")
}
