package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-accommodation-portal/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 8, cfg.Auth.MinPasswordLen)
	assert.Equal(t, 10, cfg.Uploads.MaxPDFMB)
	assert.Equal(t, 3, cfg.Uploads.MaxImages)
	assert.Equal(t, "03:00", cfg.Scheduler.DailyRunTime)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigFromYAML(t *testing.T) {
	raw := `
database:
  type: mysql
  mysql:
    host: dbhost
    port: 3307
auth:
  jwt_secret: from-yaml
  token_ttl_hours: 2
uploads:
  max_pdf_mb: 5
scheduler:
  daily_run_enabled: true
  daily_run_time: "04:30"
`
	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "dbhost", cfg.Database.MySQL.Host)
	assert.Equal(t, 3307, cfg.Database.MySQL.Port)
	assert.Equal(t, "from-yaml", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxPDFBytes())

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 8, cfg.Auth.MinPasswordLen)
	assert.Equal(t, 3, cfg.Uploads.MaxImages)
	assert.True(t, cfg.Scheduler.DailyRunEnabled)
	assert.Equal(t, "04:30", cfg.Scheduler.DailyRunTime)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
}
