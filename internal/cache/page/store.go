// Package page caches fully rendered documents in a local ristretto tier
// backed by an optional Redis tier.
package page

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// ErrRejected is returned when the local tier declines an entry.
var ErrRejected = errors.New("page cache: entry rejected")

// Document is one cached response.
type Document struct {
	Status      int
	ContentType string
	Body        []byte
	StoredAt    time.Time
}

// Store is one cache tier.
type Store interface {
	Get(ctx context.Context, key string) (*Document, bool, error)
	Set(ctx context.Context, key string, doc *Document, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Key is the cache key of a request. Query parameters are sorted so
// equivalent URLs share an entry.
func Key(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
