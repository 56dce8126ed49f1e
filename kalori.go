// Package kalori serves the server-rendered pages of a food nutrition and
// calculator site.
package kalori

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/cache/page"
	"goflare.io/kalori/internal/cache/ttl"
	"goflare.io/kalori/internal/config"
	"goflare.io/kalori/internal/models"
	"goflare.io/kalori/internal/provider"
	"goflare.io/kalori/internal/seo"
	"goflare.io/kalori/internal/ssr"
	"goflare.io/kalori/pkg/serialization"
)

// Option 定義初始化 Site 的選項
type Option = config.Option

var (
	WithLogger            = config.WithLogger
	WithBaseURL           = config.WithBaseURL
	WithSiteName          = config.WithSiteName
	WithAddr              = config.WithAddr
	WithDev               = config.WithDev
	WithProvider          = config.WithProvider
	WithDatabasePath      = config.WithDatabasePath
	WithStaticDir         = config.WithStaticDir
	WithDefaultExpiration = config.WithDefaultExpiration
	WithCleanupInterval   = config.WithCleanupInterval
	WithCategoryTTL       = config.WithCategoryTTL
	WithPageCache         = config.WithPageCache
	WithRedis             = config.WithRedis
	WithSerialization     = config.WithSerialization
)

// Stats 快取統計
type Stats struct {
	Data  models.Snapshot
	Pages models.Snapshot
}

// Site 組裝資料來源、快取與頁面分派器
type Site struct {
	cfg        *config.Config
	provider   provider.Provider
	db         *provider.SQLite
	cache      *ttl.Cache
	pages      *page.Cache
	slugs      *ssr.SlugFilter
	dispatcher *ssr.Dispatcher
	handler    http.Handler
	logger     *zap.Logger

	closed    *atomic.Bool
	stop      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New 初始化 Site，接受多個配置選項
func New(ctx context.Context, opts ...Option) (*Site, error) {
	cfg, err := config.NewConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}
	return NewFromConfig(ctx, cfg)
}

// NewFromConfig 以已載入的配置初始化 Site
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Site, error) {
	logger := cfg.Logger
	s := &Site{
		cfg:    cfg,
		logger: logger,
		closed: atomic.NewBool(false),
		stop:   make(chan struct{}),
	}

	// 資料來源：未指定時開啟 SQLite
	s.provider = cfg.Provider
	if s.provider == nil {
		db, err := provider.OpenSQLite(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenDatabase, err)
		}
		s.db = db
		s.provider = db
	}

	s.cache = ttl.New(
		ttl.WithDefaultTTL(cfg.DefaultExpiration),
		ttl.WithCleanupInterval(cfg.CleanupInterval),
		ttl.WithLogger(logger),
	)

	s.slugs = ssr.NewSlugFilter(cfg.BloomFilter.ExpectedItems, cfg.BloomFilter.FalsePositiveRate)
	if n, err := s.slugs.Rebuild(ctx, s.provider); err != nil {
		logger.Warn("Slug filter not built, every slug reaches the provider", zap.Error(err))
	} else {
		logger.Info("Slug filter built", zap.Int("slugs", n))
	}

	dispatcher, err := ssr.NewDispatcher(ssr.Options{
		Provider:       s.provider,
		Cache:          s.cache,
		SEO:            seo.NewBuilder(cfg.BaseURL, cfg.SiteName),
		Slugs:          s.slugs,
		Logger:         logger,
		CategoryTTL:    cfg.CategoryTTL,
		SitemapTTL:     cfg.SitemapTTL,
		PageSize:       cfg.PageSize,
		SearchLimit:    cfg.SearchLimit,
		FeaturedCount:  cfg.FeaturedCount,
		DevClientEntry: cfg.DevClientEntry,
	})
	if err != nil {
		s.closeOwned()
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}
	s.dispatcher = dispatcher

	handlerOpts := []ssr.HandlerOption{ssr.WithHandlerLogger(logger)}
	if cfg.PageCache.Enabled && !cfg.Dev {
		pages, err := newPageCache(ctx, cfg)
		if err != nil {
			s.closeOwned()
			return nil, err
		}
		s.pages = pages
		handlerOpts = append(handlerOpts, ssr.WithPageCache(pages))
	}
	if cfg.StaticDir != "" {
		handlerOpts = append(handlerOpts, ssr.WithStatic(http.FileServer(http.Dir(cfg.StaticDir))))
	}
	s.handler = ssr.NewHandler(dispatcher, ssr.NewSelector(cfg.Dev, cfg.CrawlerSignatures), handlerOpts...)

	s.cache.Start(ctx)
	s.wg.Add(1)
	go s.periodicRebuild(ctx)

	return s, nil
}

func newPageCache(ctx context.Context, cfg *config.Config) (*page.Cache, error) {
	pc := cfg.PageCache
	local, err := page.NewLocalStore(pc.MaxCost, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create local page cache: %w", err)
	}

	var remote page.Store
	if pc.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     pc.RedisAddr,
			Password: pc.RedisPassword,
			DB:       pc.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = local.Close()
			return nil, fmt.Errorf("%w: %w", ErrRedisConnect, err)
		}

		codec, err := serialization.ForType(pc.Serialization)
		if err != nil {
			_ = client.Close()
			_ = local.Close()
			return nil, err
		}
		rs, err := page.NewRemoteStore(client, pc.KeyPrefix, codec, cfg.Resilience.CircuitBreaker, cfg.Resilience.Retry, cfg.Logger)
		if err != nil {
			_ = client.Close()
			_ = local.Close()
			return nil, err
		}
		remote = rs
	}

	return page.New(local, remote, pc.TTL, cfg.Logger)
}

// periodicRebuild 定期重建 slug 過濾器，涵蓋未經 Invalidate 的新增資料
func (s *Site) periodicRebuild(ctx context.Context) {
	defer s.wg.Done()

	interval := s.cfg.CategoryTTL
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			if _, err := s.slugs.Rebuild(ctx, s.provider); err != nil {
				s.logger.Warn("Periodic slug filter rebuild failed", zap.Error(err))
			}
		}
	}
}

// Handler 回傳站點的 HTTP 處理器
func (s *Site) Handler() http.Handler {
	return s.handler
}

// Config 回傳生效中的配置
func (s *Site) Config() *config.Config {
	return s.cfg
}

// Dispatch 直接渲染一個路徑，不經過 HTTP 層
func (s *Site) Dispatch(ctx context.Context, path string, query url.Values) ssr.Response {
	return s.dispatcher.Dispatch(ctx, path, query)
}

// Match 回傳路徑對應的頁面類型
func (s *Site) Match(path string) ssr.RouteMatch {
	return s.dispatcher.Match(path, nil)
}

// Sitemap 產生 sitemap.xml
func (s *Site) Sitemap(ctx context.Context) ([]byte, error) {
	return s.dispatcher.Sitemap(ctx)
}

// Invalidate 清空所有快取並重建 slug 過濾器，資料匯入後呼叫
func (s *Site) Invalidate(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.cache.Clear()
	var err error
	if s.pages != nil {
		err = s.pages.Clear(ctx)
	}
	if _, rerr := s.slugs.Rebuild(ctx, s.provider); rerr != nil {
		err = errors.Join(err, rerr)
	}
	if err != nil {
		return fmt.Errorf("invalidate: %w", err)
	}
	s.logger.Info("Caches invalidated")
	return nil
}

// Stats 回傳資料快取與頁面快取的統計
func (s *Site) Stats() Stats {
	st := Stats{Data: s.cache.Stats()}
	if s.pages != nil {
		st.Pages = s.pages.Stats()
	}
	return st
}

// Close 關閉 Site，釋放資源
func (s *Site) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.stop)
		s.wg.Wait()
		s.cache.Close()
		err = s.closeOwned()
	})
	return err
}

func (s *Site) closeOwned() error {
	var err error
	if s.pages != nil {
		err = errors.Join(err, s.pages.Close())
	}
	if s.db != nil {
		err = errors.Join(err, s.db.Close())
	}
	return err
}
