package page

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/models"
)

// Cache reads through the local tier to the remote tier, backfilling local
// hits from remote. Remote failures are logged and treated as misses.
type Cache struct {
	local   Store
	remote  Store
	ttl     time.Duration
	metrics *models.Metrics
	logger  *zap.Logger
	tracer  trace.Tracer
}

// New builds a Cache. remote may be nil.
func New(local, remote Store, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	if local == nil {
		return nil, errors.New("page cache: local store is required")
	}
	if ttl <= 0 {
		return nil, errors.New("page cache: ttl must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		local:   local,
		remote:  remote,
		ttl:     ttl,
		metrics: models.NewMetrics(),
		logger:  logger,
		tracer:  otel.Tracer("page-cache"),
	}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*Document, bool) {
	ctx, span := c.tracer.Start(ctx, "PageCache.Get", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	if doc, ok, _ := c.local.Get(ctx, key); ok {
		c.metrics.Hits.Inc()
		span.SetAttributes(attribute.String("tier", "local"))
		return doc, true
	}

	if c.remote != nil {
		doc, ok, err := c.remote.Get(ctx, key)
		if err != nil {
			span.RecordError(err)
			c.logger.Warn("Remote page cache unavailable", zap.String("key", key), zap.Error(err))
		}
		if ok {
			c.metrics.Hits.Inc()
			span.SetAttributes(attribute.String("tier", "remote"))
			if ttl := c.ttl - time.Since(doc.StoredAt); ttl > 0 {
				if err := c.local.Set(ctx, key, doc, ttl); err != nil {
					c.logger.Debug("Local page cache backfill skipped", zap.String("key", key), zap.Error(err))
				}
			}
			return doc, true
		}
	}

	c.metrics.Misses.Inc()
	return nil, false
}

func (c *Cache) Set(ctx context.Context, key string, doc *Document) {
	ctx, span := c.tracer.Start(ctx, "PageCache.Set", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	if doc.StoredAt.IsZero() {
		doc.StoredAt = time.Now()
	}
	c.metrics.Loads.Inc()

	if err := c.local.Set(ctx, key, doc, c.ttl); err != nil {
		c.logger.Debug("Local page cache set skipped", zap.String("key", key), zap.Error(err))
	}
	if c.remote != nil {
		if err := c.remote.Set(ctx, key, doc, c.ttl); err != nil {
			span.RecordError(err)
			c.logger.Warn("Failed to store page remotely", zap.String("key", key), zap.Error(err))
		}
	}
}

// Clear empties both tiers.
func (c *Cache) Clear(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "PageCache.Clear")
	defer span.End()

	err := c.local.Clear(ctx)
	if c.remote != nil {
		err = errors.Join(err, c.remote.Clear(ctx))
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Stats reports hits and misses across both tiers. Size is not tracked.
func (c *Cache) Stats() models.Snapshot {
	return c.metrics.Snapshot(0)
}

func (c *Cache) Close() error {
	err := c.local.Close()
	if c.remote != nil {
		err = errors.Join(err, c.remote.Close())
	}
	return err
}
