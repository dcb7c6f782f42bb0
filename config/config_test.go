package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[App]
Port = 8080

[NewsAPI]
APIKey = "secret"
Country = "gb"
Timeout = "5s"

[Headlines]
DiscardStale = false

[Session]
IdleTimeout = "10m"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "0.0.0.0", cfg.App.Host, "missing keys keep defaults")
	assert.Equal(t, "secret", cfg.NewsAPI.APIKey)
	assert.Equal(t, "gb", cfg.NewsAPI.Country)
	assert.Equal(t, 5*time.Second, cfg.NewsAPI.Timeout)
	assert.Equal(t, "https://newsapi.org/v2/", cfg.NewsAPI.BaseURL)
	assert.False(t, cfg.Headlines.DiscardStale)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "newsly_sid", cfg.Session.CookieName)
	require.NoError(t, cfg.Validate())

	api := cfg.NewsAPIConfig()
	assert.Equal(t, "secret", api.APIKey)
	assert.Equal(t, 5*time.Second, api.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[App\nPort = 1"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, "us", cfg.NewsAPI.Country)
	assert.Equal(t, 30*time.Second, cfg.NewsAPI.Timeout)
	assert.True(t, cfg.Headlines.DiscardStale)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIKey is required")

	cfg.NewsAPI.APIKey = "k"
	cfg.NewsAPI.Country = "usa"
	cfg.App.Port = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two-letter")
	assert.Contains(t, err.Error(), "App.Port")

	cfg.NewsAPI.Country = "us"
	cfg.App.Port = 3000
	assert.NoError(t, cfg.Validate())
}
