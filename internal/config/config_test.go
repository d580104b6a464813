package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  port: "9000"
database:
  max_open_conns: 25
log:
  level: debug
  format: text
rate_limit:
  enabled: true
  rps: 10
  burst: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, float64(10), cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)

	// Values the file does not mention keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INCIDENTDESK_SERVER__PORT", "7070")
	t.Setenv("INCIDENTDESK_DATABASE__URL", "postgres://env:env@db:5432/envdb")
	t.Setenv("INCIDENTDESK_DATABASE__MAX_OPEN_CONNS", "3")
	t.Setenv("INCIDENTDESK_LOG__LEVEL", "warn")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "postgres://env:env@db:5432/envdb", cfg.Database.URL)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0o600))

	t.Setenv("INCIDENTDESK_SERVER__PORT", "9001")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "9001", cfg.Server.Port)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.port", envKey("INCIDENTDESK_SERVER__PORT"))
	assert.Equal(t, "database.max_open_conns", envKey("INCIDENTDESK_DATABASE__MAX_OPEN_CONNS"))
	assert.Equal(t, "rate_limit.enabled", envKey("INCIDENTDESK_RATE_LIMIT__ENABLED"))
}
