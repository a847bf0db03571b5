package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.TriggerRateLimit)
	assert.Equal(t, 30*time.Second, cfg.N8N.Timeout)
	assert.Equal(t, 300*time.Second, cfg.RankLLM.Timeout)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
environment: production
server:
  port: 9000
  allowedOrigins:
    - https://promptmetrics.com
n8n:
  webhookUrl: https://n8n.example/webhook/abc
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "9100")
	t.Setenv("N8N_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "https://n8n.example/webhook/abc", cfg.N8N.WebhookURL)
	assert.Equal(t, 5*time.Second, cfg.N8N.Timeout)
	assert.Equal(t, []string{"https://promptmetrics.com"}, cfg.AllowedOrigins())
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "abc")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOriginsDevelopment(t *testing.T) {
	cfg := defaults()
	t.Setenv("ALLOWED_ORIGINS", "https://promptmetrics.com, https://promptmetrics.vercel.app")
	require.NoError(t, cfg.applyEnv())

	origins := cfg.AllowedOrigins()
	assert.Contains(t, origins, "https://promptmetrics.com")
	assert.Contains(t, origins, "https://promptmetrics.vercel.app")
	assert.Contains(t, origins, "http://localhost:5173")
}
