package page

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// averageDocumentSize sizes the admission counters for ristretto.
const averageDocumentSize = 16 << 10

// LocalStore is the in-process tier, bounded by total body size.
type LocalStore struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// NewLocalStore creates a LocalStore holding at most maxCost bytes of bodies.
func NewLocalStore(maxCost int64, logger *zap.Logger) (*LocalStore, error) {
	if maxCost <= 0 {
		return nil, fmt.Errorf("page cache max cost must be positive, got %d", maxCost)
	}
	numCounters := 10 * (maxCost / averageDocumentSize)
	if numCounters < 10000 {
		numCounters = 10000
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        numCounters,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Ristretto cache: %w", err)
	}

	return &LocalStore{cache: c, logger: logger}, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (*Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	value, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	doc, ok := value.(*Document)
	if !ok {
		s.logger.Error("Invalid page cache entry type", zap.String("key", key))
		s.cache.Del(key)
		return nil, false, nil
	}
	return doc, true, nil
}

// Set stores doc and waits until it is visible to Get.
func (s *LocalStore) Set(ctx context.Context, key string, doc *Document, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.cache.SetWithTTL(key, doc, int64(len(doc.Body)), ttl) {
		return ErrRejected
	}
	s.cache.Wait()
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	s.cache.Del(key)
	return nil
}

func (s *LocalStore) Clear(ctx context.Context) error {
	s.cache.Clear()
	return nil
}

func (s *LocalStore) Close() error {
	s.cache.Close()
	return nil
}
