package models

import "go.uber.org/atomic"

// Metrics stores cache statistics
type Metrics struct {
	Hits        *atomic.Int64
	Misses      *atomic.Int64
	Expirations *atomic.Int64
	Loads       *atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		Hits:        atomic.NewInt64(0),
		Misses:      atomic.NewInt64(0),
		Expirations: atomic.NewInt64(0),
		Loads:       atomic.NewInt64(0),
	}
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Expirations int64
	Loads       int64
	Size        int
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot(size int) Snapshot {
	return Snapshot{
		Hits:        m.Hits.Load(),
		Misses:      m.Misses.Load(),
		Expirations: m.Expirations.Load(),
		Loads:       m.Loads.Load(),
		Size:        size,
	}
}
