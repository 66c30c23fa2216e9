package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test default values
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "data", config.Data.Dir)
	assert.Equal(t, "receipts", config.Receipts.Dir)
	assert.Equal(t, "incoming", config.Incoming.Dir)
	assert.Equal(t, "", config.Processed.Dir)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Model)
	assert.Equal(t, 0.01, config.Dedup.Tolerance)
	assert.False(t, config.Dedup.MatchProvider)
	assert.Equal(t, "", config.Categories.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"HSA_LOG_LEVEL":            "debug",
		"HSA_LOG_FORMAT":           "json",
		"HSA_DATA_DIR":             "/tmp/ledger-data",
		"HSA_RECEIPTS_DIR":         "/tmp/ledger-receipts",
		"HSA_PROCESSED_DIR":        "/tmp/ledger-done",
		"HSA_AI_MODEL":             "gemini-1.5-pro",
		"HSA_DEDUP_MATCH_PROVIDER": "true",
		"GEMINI_API_KEY":           "test-api-key",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test environment variable overrides
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/tmp/ledger-data", config.Data.Dir)
	assert.Equal(t, "/tmp/ledger-receipts", config.Receipts.Dir)
	assert.Equal(t, "/tmp/ledger-done", config.Processed.Dir)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.True(t, config.Dedup.MatchProvider)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_PlainLogEnvVars(t *testing.T) {
	clearTestEnvVars(t)

	// The unprefixed names older .env files carried still work.
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
data:
  dir: "ledger"
dedup:
  tolerance: 0.05
  match_provider: true
ai:
  model: "gemini-1.0-pro"
`

	err := os.WriteFile(configFile, []byte(configContent), 0600)
	require.NoError(t, err)

	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Test config file values
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "ledger", config.Data.Dir)
	assert.Equal(t, 0.05, config.Dedup.Tolerance)
	assert.True(t, config.Dedup.MatchProvider)
	assert.Equal(t, "gemini-1.0-pro", config.AI.Model)
	// Untouched keys keep their defaults
	assert.Equal(t, "receipts", config.Receipts.Dir)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
data:
  dir: "ledger"
`

	err := os.WriteFile(configFile, []byte(configContent), 0600)
	require.NoError(t, err)

	// Environment variables should override the config file
	t.Setenv("HSA_LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "env-api-key")

	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)       // env var wins
	assert.Equal(t, "ledger", config.Data.Dir)       // config file value
	assert.Equal(t, "env-api-key", config.AI.APIKey) // env var (API key)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name: "invalid log level",
			modifyConfig: func(c *Config) {
				c.Log.Level = "invalid"
			},
			expectError: "invalid log level",
		},
		{
			name: "invalid log format",
			modifyConfig: func(c *Config) {
				c.Log.Format = "invalid"
			},
			expectError: "invalid log format",
		},
		{
			name: "zero tolerance",
			modifyConfig: func(c *Config) {
				c.Dedup.Tolerance = 0
			},
			expectError: "dedup.tolerance must be positive",
		},
		{
			name: "negative tolerance",
			modifyConfig: func(c *Config) {
				c.Dedup.Tolerance = -0.01
			},
			expectError: "dedup.tolerance must be positive",
		},
		{
			name: "empty data dir",
			modifyConfig: func(c *Config) {
				c.Data.Dir = ""
			},
			expectError: "data.dir must not be empty",
		},
		{
			name: "empty receipts dir",
			modifyConfig: func(c *Config) {
				c.Receipts.Dir = ""
			},
			expectError: "receipts.dir must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.modifyConfig(config)

			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func validTestConfig() *Config {
	config := &Config{}
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.Data.Dir = "data"
	config.Receipts.Dir = "receipts"
	config.Dedup.Tolerance = 0.01
	return config
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HSA_LOG_LEVEL", "HSA_LOG_FORMAT",
		"HSA_DATA_DIR", "HSA_RECEIPTS_DIR", "HSA_INCOMING_DIR", "HSA_PROCESSED_DIR",
		"HSA_AI_MODEL", "HSA_DEDUP_TOLERANCE", "HSA_DEDUP_MATCH_PROVIDER",
		"HSA_CATEGORIES_FILE",
		"LOG_LEVEL", "LOG_FORMAT", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	require.NoError(t, os.Chdir(dir))
}
