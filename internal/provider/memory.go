package provider

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"goflare.io/kalori/internal/models"
)

// Memory is a Provider over an in-process slice, for tests and local previews.
type Memory struct {
	mu    sync.RWMutex
	foods []models.Food
}

var _ Provider = (*Memory)(nil)

// NewMemory copies foods into a new Memory provider.
func NewMemory(foods ...models.Food) *Memory {
	m := &Memory{}
	m.Replace(foods...)
	return m
}

// Replace swaps the catalog contents.
func (m *Memory) Replace(foods ...models.Food) {
	cp := make([]models.Food, len(foods))
	copy(cp, foods)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Slug < cp[j].Slug })

	m.mu.Lock()
	m.foods = cp
	m.mu.Unlock()
}

func (m *Memory) FoodBySlug(ctx context.Context, slug string) (*models.Food, error) {
	return m.find(ctx, func(f models.Food) bool { return f.Slug == slug }, slug)
}

func (m *Memory) FoodByExternalID(ctx context.Context, externalID string) (*models.Food, error) {
	return m.find(ctx, func(f models.Food) bool { return f.ExternalID == externalID }, externalID)
}

func (m *Memory) find(ctx context.Context, match func(models.Food) bool, key string) (*models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.foods {
		if match(f) {
			food := f
			return &food, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

func (m *Memory) ListFoods(ctx context.Context, offset, limit int) ([]models.Food, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	m.mu.RLock()
	byName := make([]models.Food, len(m.foods))
	copy(byName, m.foods)
	m.mu.RUnlock()

	sort.SliceStable(byName, func(i, j int) bool { return byName[i].Name < byName[j].Name })

	total := len(byName)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return []models.Food{}, total, nil
	}
	end := min(offset+limit, total)
	return byName[offset:end], total, nil
}

func (m *Memory) RandomFoods(ctx context.Context, n int) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	picked := make([]models.Food, len(m.foods))
	copy(picked, m.foods)
	m.mu.RUnlock()

	rand.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if n < len(picked) {
		picked = picked[:max(n, 0)]
	}
	return picked, nil
}

func (m *Memory) SearchFoods(ctx context.Context, query string, limit int) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := models.Fold(strings.TrimSpace(query))
	if q == "" {
		return []models.Food{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Food{}
	for _, f := range m.foods {
		if strings.Contains(models.Fold(f.Name), q) || strings.Contains(models.Fold(f.NameEn), q) {
			out = append(out, f)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) FoodsByCategory(ctx context.Context, main, sub string) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Food{}
	for _, f := range m.foods {
		if f.Category == main && (sub == "" || f.Subcategory == sub) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) CategoryGroups(ctx context.Context) ([]models.CategoryGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	pairs := make([][2]string, 0, len(m.foods))
	for _, f := range m.foods {
		pairs = append(pairs, [2]string{f.Category, f.Subcategory})
	}
	m.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return groupCategories(pairs), nil
}

func (m *Memory) AllFoods(ctx context.Context) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Food, len(m.foods))
	copy(out, m.foods)
	return out, nil
}
