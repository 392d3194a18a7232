package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	configContent := `
mask_token = "****"
placeholder = "n/a"
series_points = 12
currency = "XOF"

[account_types]
COURANT = "Current account"

[log]
level = "debug"
format = "json"

[server]
addr = "127.0.0.1:9090"
allowed_origins = ["https://bank.example.com"]
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Load the config
	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "****", config.MaskToken)
	assert.Equal(t, "n/a", config.Placeholder)
	assert.Equal(t, 12, config.SeriesPoints)
	assert.Equal(t, "XOF", config.Currency)

	// viper lower-cases map keys
	assert.Equal(t, "Current account", config.AccountTypes["courant"])
	assert.Equal(t, "Current account", config.TypeLabels()["COURANT"])

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)

	assert.Equal(t, "127.0.0.1:9090", config.Server.Addr)
	assert.Equal(t, []string{"https://bank.example.com"}, config.Server.AllowedOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "•••", config.MaskToken)
	assert.Equal(t, "—", config.Placeholder)
	assert.Equal(t, 7, config.SeriesPoints)
	assert.Equal(t, "FCFA", config.Currency)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Len(t, config.AccountTypes, 4)
	assert.Equal(t, "Livret A", config.TypeLabels()["LIVRET"])
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("LEDGERVIEW_SERVER_ADDR", ":7070")
	t.Setenv("LEDGERVIEW_SERIES_POINTS", "30")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", config.Server.Addr)
	assert.Equal(t, 30, config.SeriesPoints)
}

func TestLoadConfig_InvalidPoints(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("series_points = 0\n"), 0644))

	config, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "series_points")
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("nonexistent.toml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}
