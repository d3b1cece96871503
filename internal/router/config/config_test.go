package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/records-browser/internal/router/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://contratacionesabiertas.oece.gob.pe/api/v1/records", cfg.RecordsAPIURL)
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, 30*time.Second, cfg.RecordsAPITimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "SERVER_ADDRESS=127.0.0.1:9000\nDEFAULT_PAGE_SIZE=25\nPOSTGRES_CONN=postgres://u:p@localhost:5432/db\nCACHE_TTL=1m\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	t.Setenv("DEFAULT_PAGE_SIZE", "100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, 100, cfg.DefaultPageSize)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DEFAULT_PAGE_SIZE", "0")
	_, err := config.LoadConfig(t.TempDir())
	require.Error(t, err)
}

func TestValidate_BurstRequiredWithRateLimit(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.RecordsAPIBurst = 0
	require.Error(t, cfg.Validate())

	cfg.RecordsAPIRPS = 0
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_ZeroBurstRejected(t *testing.T) {
	t.Setenv("RECORDS_API_BURST", "0")
	_, err := config.LoadConfig(t.TempDir())
	require.Error(t, err)
}

func TestSessionSweepInterval(t *testing.T) {
	assert.Equal(t, 15*time.Minute, config.Config{SessionTTL: 30 * time.Minute}.SessionSweepInterval())
	assert.Equal(t, config.MinSweepInterval, config.Config{SessionTTL: time.Nanosecond}.SessionSweepInterval())
	assert.Equal(t, config.MinSweepInterval, config.Config{SessionTTL: time.Second}.SessionSweepInterval())
}
