package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/provider"
	"goflare.io/kalori/internal/retrier"
	"goflare.io/kalori/pkg/serialization"
)

// Config 站點伺服器的配置
type Config struct {
	BaseURL  string
	SiteName string
	Addr     string
	Dev      bool

	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
	CategoryTTL       time.Duration
	SitemapTTL        time.Duration

	PageSize      int
	SearchLimit   int
	FeaturedCount int

	DatabasePath      string
	StaticDir         string
	DevClientEntry    string
	CrawlerSignatures []string

	PageCache   PageCacheConfig
	BloomFilter BloomFilterConfig
	Resilience  ResilienceConfig

	Provider provider.Provider
	Logger   *zap.Logger
}

// PageCacheConfig 渲染頁面快取配置
type PageCacheConfig struct {
	Enabled       bool
	MaxCost       int64
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	Serialization string
}

// BloomFilterConfig 用於布隆過濾器的配置
type BloomFilterConfig struct {
	ExpectedItems     uint
	FalsePositiveRate float64
}

// ResilienceConfig 用於設置重試和熔斷器
type ResilienceConfig struct {
	CircuitBreaker gobreaker.Settings
	Retry          retrier.Settings
}

// Option 函數類型
type Option func(*Config) error

var (
	ErrInvalidBaseURL  = errors.New("base url must be an absolute http(s) url")
	ErrInvalidPageSize = errors.New("page size must be at least 1")
)

// DefaultCrawlerSignatures are matched case-insensitively against the User-Agent header.
var DefaultCrawlerSignatures = []string{
	"googlebot",
	"bingbot",
	"yandex",
	"baiduspider",
	"duckduckbot",
	"slurp",
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
}

// NewConfig 創建一個默認的 Config，允許覆蓋特定參數
func NewConfig(options ...Option) (*Config, error) {
	cfg := &Config{
		BaseURL:  "http://localhost:8080",
		SiteName: "Kalori",
		Addr:     ":8080",

		DefaultExpiration: time.Hour,
		CleanupInterval:   10 * time.Minute,
		CategoryTTL:       6 * time.Hour,
		SitemapTTL:        6 * time.Hour,

		PageSize:      48,
		SearchLimit:   50,
		FeaturedCount: 12,

		DatabasePath:      "kalori.db",
		DevClientEntry:    "/src/main.tsx",
		CrawlerSignatures: DefaultCrawlerSignatures,

		PageCache: PageCacheConfig{
			Enabled:       true,
			MaxCost:       64 << 20,
			TTL:           5 * time.Minute,
			KeyPrefix:     "kalori:page:",
			Serialization: serialization.GobType,
		},
		BloomFilter: BloomFilterConfig{
			ExpectedItems:     20000,
			FalsePositiveRate: 0.01,
		},
		Resilience: ResilienceConfig{
			CircuitBreaker: gobreaker.Settings{
				Name:        "page-cache-redis",
				MaxRequests: 3,
				Interval:    60 * time.Second,
				Timeout:     30 * time.Second,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures > 5
				},
			},
			Retry: retrier.DefaultSettings(),
		},
	}

	// 應用所有選項
	for _, option := range options {
		if err := option(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		logger, err := newLogger(cfg.Dev)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize default logger: %w", err)
		}
		cfg.Logger = logger
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 檢查配置並正規化 BaseURL
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.PageSize < 1 {
		return ErrInvalidPageSize
	}
	if c.SearchLimit < 1 {
		c.SearchLimit = 50
	}
	if c.BloomFilter.ExpectedItems == 0 {
		c.BloomFilter.ExpectedItems = 1000
	}
	if c.BloomFilter.FalsePositiveRate <= 0 || c.BloomFilter.FalsePositiveRate >= 1 {
		c.BloomFilter.FalsePositiveRate = 0.01
	}
	return nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// WithLogger 設置自定義 Logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger != nil {
			c.Logger = logger
		}
		return nil
	}
}

// WithBaseURL 設置站點的絕對根網址
func WithBaseURL(base string) Option {
	return func(c *Config) error {
		c.BaseURL = base
		return nil
	}
}

// WithSiteName 設置站點名稱
func WithSiteName(name string) Option {
	return func(c *Config) error {
		if name != "" {
			c.SiteName = name
		}
		return nil
	}
}

// WithAddr 設置監聽位址
func WithAddr(addr string) Option {
	return func(c *Config) error {
		if addr != "" {
			c.Addr = addr
		}
		return nil
	}
}

// WithDev 啟用開發模式
func WithDev(dev bool) Option {
	return func(c *Config) error {
		c.Dev = dev
		return nil
	}
}

// WithProvider 設置資料來源
func WithProvider(p provider.Provider) Option {
	return func(c *Config) error {
		c.Provider = p
		return nil
	}
}

// WithDatabasePath 設置 SQLite 資料庫路徑
func WithDatabasePath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return errors.New("database path must not be empty")
		}
		c.DatabasePath = path
		return nil
	}
}

// WithStaticDir 設置靜態檔案目錄
func WithStaticDir(dir string) Option {
	return func(c *Config) error {
		c.StaticDir = dir
		return nil
	}
}

// WithDefaultExpiration 設置默認的過期時間
func WithDefaultExpiration(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return errors.New("default expiration must be greater than 0")
		}
		c.DefaultExpiration = ttl
		return nil
	}
}

// WithCleanupInterval 設置清理過期項目的間隔
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return errors.New("cleanup interval must be greater than 0")
		}
		c.CleanupInterval = d
		return nil
	}
}

// WithCategoryTTL 設置分類列表的快取時間
func WithCategoryTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl > 0 {
			c.CategoryTTL = ttl
		}
		return nil
	}
}

// WithPageCache 啟用或停用渲染頁面快取
func WithPageCache(enabled bool) Option {
	return func(c *Config) error {
		c.PageCache.Enabled = enabled
		return nil
	}
}

// WithRedis 為頁面快取設置遠端 Redis 層
func WithRedis(addr, password string, db int) Option {
	return func(c *Config) error {
		c.PageCache.RedisAddr = addr
		c.PageCache.RedisPassword = password
		c.PageCache.RedisDB = db
		return nil
	}
}

// WithSerialization 設置頁面快取的序列化方式
func WithSerialization(typ string) Option {
	return func(c *Config) error {
		if _, err := serialization.ForType(typ); err != nil {
			return err
		}
		c.PageCache.Serialization = typ
		return nil
	}
}
