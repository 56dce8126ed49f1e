package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := config.NewConfig(config.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.DefaultExpiration)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	assert.Greater(t, cfg.CategoryTTL, time.Hour)
	assert.True(t, cfg.PageCache.Enabled)
	assert.NotEmpty(t, cfg.CrawlerSignatures)
	assert.NotNil(t, cfg.Logger)
}

func TestNewConfig_NormalizesBaseURL(t *testing.T) {
	cfg, err := config.NewConfig(
		config.WithLogger(zap.NewNop()),
		config.WithBaseURL("https://kalori.example.com/"),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://kalori.example.com", cfg.BaseURL)
}

func TestNewConfig_RejectsRelativeBaseURL(t *testing.T) {
	_, err := config.NewConfig(
		config.WithLogger(zap.NewNop()),
		config.WithBaseURL("/relative"),
	)
	assert.ErrorIs(t, err, config.ErrInvalidBaseURL)
}

func TestNewConfig_OptionErrors(t *testing.T) {
	_, err := config.NewConfig(config.WithLogger(zap.NewNop()), config.WithDefaultExpiration(0))
	assert.Error(t, err)

	_, err = config.NewConfig(config.WithLogger(zap.NewNop()), config.WithSerialization("xml"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kalori.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://kalori.example.com
site_name: Kalori Rehberi
category_ttl: 3h
page_cache:
  enabled: false
  redis_addr: localhost:6379
`), 0o644))

	cfg, err := config.Load(path, config.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, "https://kalori.example.com", cfg.BaseURL)
	assert.Equal(t, "Kalori Rehberi", cfg.SiteName)
	assert.Equal(t, 3*time.Hour, cfg.CategoryTTL)
	assert.False(t, cfg.PageCache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.PageCache.RedisAddr)
	assert.Equal(t, time.Hour, cfg.DefaultExpiration)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KALORI_BASE_URL", "https://env.example.com")

	cfg, err := config.Load("", config.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), config.WithLogger(zap.NewNop()))
	assert.Error(t, err)
}
