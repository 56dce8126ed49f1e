package ttl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Start runs Cleanup every cleanup interval until ctx ends or Close is called.
// Only the first call starts a janitor.
func (c *Cache) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		go c.run(ctx)
	})
}

func (c *Cache) run(ctx context.Context) {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			removed := c.Cleanup()
			c.logger.Debug("Cache sweep",
				zap.Int("removed", removed),
				zap.Int("size", c.Size()))
		}
	}
}

// Close stops the janitor if it is running. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}
