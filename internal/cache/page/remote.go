package page

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/retrier"
	"goflare.io/kalori/pkg/serialization"
)

const scanBatch = 500

// RedisClient is the subset of the go-redis client the remote tier uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// RemoteStore keeps documents in Redis behind a circuit breaker and retries.
type RemoteStore struct {
	client  RedisClient
	prefix  string
	codec   serialization.Codec
	breaker *gobreaker.CircuitBreaker
	retrier *retrier.Retrier
	logger  *zap.Logger
}

// NewRemoteStore wraps client. Every key is stored under prefix.
func NewRemoteStore(
	client RedisClient,
	prefix string,
	codec serialization.Codec,
	breaker gobreaker.Settings,
	retry retrier.Settings,
	logger *zap.Logger) (*RemoteStore, error) {

	r, err := retrier.New(retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create retrier: %w", err)
	}
	if codec == nil {
		codec = serialization.JSON{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RemoteStore{
		client:  client,
		prefix:  prefix,
		codec:   codec,
		breaker: gobreaker.NewCircuitBreaker(breaker),
		retrier: r,
		logger:  logger,
	}, nil
}

// executeWithResilience runs fn under retries, all inside one breaker call.
func (s *RemoteStore) executeWithResilience(ctx context.Context, fn func() error) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.retrier.Run(ctx, fn)
	})
	return err
}

func (s *RemoteStore) Get(ctx context.Context, key string) (*Document, bool, error) {
	var data []byte
	found := true
	err := s.executeWithResilience(ctx, func() error {
		b, err := s.client.Get(ctx, s.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			found = false
			return nil
		}
		data = b
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("remote get %q: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}

	var doc Document
	if err := s.codec.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("Dropping undecodable page cache entry", zap.String("key", key), zap.Error(err))
		_ = s.Delete(ctx, key)
		return nil, false, nil
	}
	return &doc, true, nil
}

func (s *RemoteStore) Set(ctx context.Context, key string, doc *Document, ttl time.Duration) error {
	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode page %q: %w", key, err)
	}
	if err := s.executeWithResilience(ctx, func() error {
		return s.client.Set(ctx, s.prefix+key, data, ttl).Err()
	}); err != nil {
		return fmt.Errorf("remote set %q: %w", key, err)
	}
	return nil
}

func (s *RemoteStore) Delete(ctx context.Context, key string) error {
	if err := s.executeWithResilience(ctx, func() error {
		return s.client.Del(ctx, s.prefix+key).Err()
	}); err != nil {
		return fmt.Errorf("remote delete %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the prefix. Other data in the database is left alone.
func (s *RemoteStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		var keys []string
		err := s.executeWithResilience(ctx, func() error {
			var err error
			keys, cursor, err = s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
			return err
		})
		if err != nil {
			return fmt.Errorf("scan page keys: %w", err)
		}

		if len(keys) > 0 {
			if err := s.executeWithResilience(ctx, func() error {
				return s.client.Del(ctx, keys...).Err()
			}); err != nil {
				return fmt.Errorf("delete page keys: %w", err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func (s *RemoteStore) Close() error {
	return s.client.Close()
}
