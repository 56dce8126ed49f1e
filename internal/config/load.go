package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// fileConfig mirrors the keys accepted in a config file or KALORI_* environment variables.
type fileConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	SiteName          string        `mapstructure:"site_name"`
	Addr              string        `mapstructure:"addr"`
	Dev               bool          `mapstructure:"dev"`
	DatabasePath      string        `mapstructure:"database_path"`
	StaticDir         string        `mapstructure:"static_dir"`
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	CategoryTTL       time.Duration `mapstructure:"category_ttl"`
	PageCache         struct {
		Enabled       bool          `mapstructure:"enabled"`
		TTL           time.Duration `mapstructure:"ttl"`
		RedisAddr     string        `mapstructure:"redis_addr"`
		RedisPassword string        `mapstructure:"redis_password"`
		RedisDB       int           `mapstructure:"redis_db"`
		Serialization string        `mapstructure:"serialization"`
	} `mapstructure:"page_cache"`
}

// Load reads path (YAML, JSON or TOML by extension) when given, applies KALORI_*
// environment overrides, then the explicit options, in that order.
func Load(path string, opts ...Option) (*Config, error) {
	defaults, err := NewConfig(WithLogger(zap.NewNop()))
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("KALORI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("site_name", defaults.SiteName)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("dev", defaults.Dev)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("static_dir", defaults.StaticDir)
	v.SetDefault("default_expiration", defaults.DefaultExpiration)
	v.SetDefault("cleanup_interval", defaults.CleanupInterval)
	v.SetDefault("category_ttl", defaults.CategoryTTL)
	v.SetDefault("page_cache.enabled", defaults.PageCache.Enabled)
	v.SetDefault("page_cache.ttl", defaults.PageCache.TTL)
	v.SetDefault("page_cache.redis_addr", defaults.PageCache.RedisAddr)
	v.SetDefault("page_cache.redis_password", defaults.PageCache.RedisPassword)
	v.SetDefault("page_cache.redis_db", defaults.PageCache.RedisDB)
	v.SetDefault("page_cache.serialization", defaults.PageCache.Serialization)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	fileOpts := []Option{
		WithBaseURL(fc.BaseURL),
		WithSiteName(fc.SiteName),
		WithAddr(fc.Addr),
		WithDev(fc.Dev),
		WithStaticDir(fc.StaticDir),
		WithCategoryTTL(fc.CategoryTTL),
		WithPageCache(fc.PageCache.Enabled),
		WithRedis(fc.PageCache.RedisAddr, fc.PageCache.RedisPassword, fc.PageCache.RedisDB),
		WithSerialization(fc.PageCache.Serialization),
		func(c *Config) error {
			if fc.PageCache.TTL > 0 {
				c.PageCache.TTL = fc.PageCache.TTL
			}
			return nil
		},
	}
	if fc.DatabasePath != "" {
		fileOpts = append(fileOpts, WithDatabasePath(fc.DatabasePath))
	}
	if fc.DefaultExpiration > 0 {
		fileOpts = append(fileOpts, WithDefaultExpiration(fc.DefaultExpiration))
	}
	if fc.CleanupInterval > 0 {
		fileOpts = append(fileOpts, WithCleanupInterval(fc.CleanupInterval))
	}

	return NewConfig(append(fileOpts, opts...)...)
}
