package ssr

import (
	"context"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"goflare.io/kalori/internal/provider"
)

// SlugFilter answers "definitely not a food" for single-segment paths without
// touching the provider. Until the first Rebuild every slug may exist.
type SlugFilter struct {
	mu                sync.RWMutex
	filter            *bloom.BloomFilter
	expectedItems     uint
	falsePositiveRate float64
}

// NewSlugFilter sizes the filter for expectedItems slugs at the given false positive rate.
func NewSlugFilter(expectedItems uint, falsePositiveRate float64) *SlugFilter {
	if expectedItems == 0 {
		expectedItems = 1000
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.01
	}
	return &SlugFilter{expectedItems: expectedItems, falsePositiveRate: falsePositiveRate}
}

// Rebuild replaces the filter with every slug p knows. It returns the slug count.
func (s *SlugFilter) Rebuild(ctx context.Context, p provider.Provider) (int, error) {
	foods, err := p.AllFoods(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild slug filter: %w", err)
	}

	n := s.expectedItems
	if uint(len(foods)) > n {
		n = uint(len(foods))
	}
	filter := bloom.NewWithEstimates(n, s.falsePositiveRate)
	for _, f := range foods {
		filter.AddString(f.Slug)
	}

	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return len(foods), nil
}

// Add records a slug without a full rebuild.
func (s *SlugFilter) Add(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != nil {
		s.filter.AddString(slug)
	}
}

// MayContain reports whether slug could belong to a food.
func (s *SlugFilter) MayContain(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filter == nil {
		return true
	}
	return s.filter.TestString(slug)
}
