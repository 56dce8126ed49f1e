package models

import (
	"time"
)

// Entry is a single value held by the time-bounded cache.
type Entry struct {
	Value     any
	ExpiresAt time.Time
}

// NewEntry creates an Entry that expires ttl after now.
func NewEntry(value any, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Value:     value,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry has passed its expiry at the given instant.
func (e *Entry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
