// Package provider defines the read interface over the food catalog and its
// SQLite and in-memory implementations.
package provider

import (
	"context"
	"errors"

	"goflare.io/kalori/internal/models"
)

var (
	// ErrNotFound is returned when no food matches a lookup.
	ErrNotFound = errors.New("food not found")
)

// Provider is the sole source of truth the page dispatcher reads.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: single-record lookups return ErrNotFound (possibly wrapped) on a miss;
//     any other error is an upstream failure.
type Provider interface {
	// FoodBySlug returns the food with the given URL slug.
	FoodBySlug(ctx context.Context, slug string) (*models.Food, error)

	// FoodByExternalID returns the food imported from the given source record.
	FoodByExternalID(ctx context.Context, externalID string) (*models.Food, error)

	// ListFoods returns one page of foods ordered by name, and the total count.
	ListFoods(ctx context.Context, offset, limit int) ([]models.Food, int, error)

	// RandomFoods returns up to n foods in random order.
	RandomFoods(ctx context.Context, n int) ([]models.Food, error)

	// SearchFoods returns up to limit foods whose names contain query.
	SearchFoods(ctx context.Context, query string, limit int) ([]models.Food, error)

	// FoodsByCategory returns foods in a main category, narrowed to a subcategory when sub is set.
	FoodsByCategory(ctx context.Context, main, sub string) ([]models.Food, error)

	// CategoryGroups returns main categories with their subcategories, both sorted.
	CategoryGroups(ctx context.Context) ([]models.CategoryGroup, error)

	// AllFoods returns every food ordered by slug.
	AllFoods(ctx context.Context) ([]models.Food, error)
}

// groupCategories folds (main, sub) pairs into sorted CategoryGroups. Empty
// subcategories are dropped; a main category with none still appears.
func groupCategories(pairs [][2]string) []models.CategoryGroup {
	index := make(map[string]int)
	seen := make(map[[2]string]bool)
	var groups []models.CategoryGroup

	for _, p := range pairs {
		main, sub := p[0], p[1]
		if main == "" {
			continue
		}
		i, ok := index[main]
		if !ok {
			i = len(groups)
			index[main] = i
			groups = append(groups, models.CategoryGroup{MainCategory: main, Subcategories: []string{}})
		}
		if sub == "" || seen[p] {
			continue
		}
		seen[p] = true
		groups[i].Subcategories = append(groups[i].Subcategories, sub)
	}
	return groups
}
