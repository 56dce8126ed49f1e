package ssr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"goflare.io/kalori/internal/cache/ttl"
	"goflare.io/kalori/internal/models"
	"goflare.io/kalori/internal/provider"
)

// Resolved is everything the render phase needs for one page.
type Resolved struct {
	Shape  Shape
	Status int
	Path   string
	Groups []models.CategoryGroup

	Food  *models.Food
	Foods []models.Food

	Query      string
	Page       int
	TotalPages int
	Total      int

	Group       *models.CategoryGroup
	Subcategory string

	Calculator Calculator
	Legal      LegalPage
}

// CategoryGroups returns the category navigation, cached for the category TTL.
func (d *Dispatcher) CategoryGroups(ctx context.Context) ([]models.CategoryGroup, error) {
	groups, err := ttl.Load(ctx, d.cache, categoriesKey, d.categoryTTL, d.provider.CategoryGroups)
	if err != nil {
		return nil, fmt.Errorf("category groups: %w", err)
	}
	return groups, nil
}

// Resolve fetches the data for m. Unknown categories and foods downgrade the
// result to ShapeNotFound; any other provider error is returned.
func (d *Dispatcher) Resolve(ctx context.Context, path string, m RouteMatch) (*Resolved, error) {
	ctx, span := d.tracer.Start(ctx, "ssr.Resolve", trace.WithAttributes(attribute.String("shape", m.Shape.String())))
	defer span.End()

	groups, err := d.CategoryGroups(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	r := &Resolved{Shape: m.Shape, Status: http.StatusOK, Path: path, Groups: groups}

	switch m.Shape {
	case ShapeHome:
		r.Foods, err = d.provider.RandomFoods(ctx, d.featuredCount)

	case ShapeSearch:
		r.Query = strings.TrimSpace(m.Query.Get("q"))
		if r.Query != "" {
			r.Foods, err = d.provider.SearchFoods(ctx, r.Query, d.searchLimit)
		}

	case ShapeAllFoods:
		err = d.resolveAllFoods(ctx, r, m.Query)

	case ShapeCalculatorIndex:

	case ShapeCalculator:
		r.Calculator, _ = LookupCalculator(m.Params[0])

	case ShapeLegal:
		r.Legal, _ = LookupLegal(m.Params[0])

	case ShapeCategory:
		if g := findGroup(groups, m.Params[0]); g != nil {
			r.Group = g
			r.Foods, err = d.provider.FoodsByCategory(ctx, g.MainCategory, "")
		} else {
			r.Shape = ShapeNotFound
		}

	case ShapeSubcategory:
		g := findGroup(groups, m.Params[0])
		sub, ok := findSubcategory(g, m.Params[1])
		if ok {
			r.Group = g
			r.Subcategory = sub
			r.Foods, err = d.provider.FoodsByCategory(ctx, g.MainCategory, sub)
		} else {
			r.Shape = ShapeNotFound
		}

	case ShapeFood:
		err = d.resolveFood(ctx, r, m.Params[0])
	}

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolve %s %q: %w", m.Shape, path, err)
	}
	if r.Shape == ShapeNotFound {
		r.Status = http.StatusNotFound
	}
	return r, nil
}

func (d *Dispatcher) resolveFood(ctx context.Context, r *Resolved, slug string) error {
	if d.slugs != nil && !d.slugs.MayContain(slug) {
		r.Shape = ShapeNotFound
		return nil
	}

	food, err := d.provider.FoodBySlug(ctx, slug)
	if errors.Is(err, provider.ErrNotFound) {
		r.Shape = ShapeNotFound
		return nil
	}
	if err != nil {
		return err
	}
	r.Food = food
	return nil
}

func (d *Dispatcher) resolveAllFoods(ctx context.Context, r *Resolved, query url.Values) error {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	foods, total, err := d.provider.ListFoods(ctx, (page-1)*d.pageSize, d.pageSize)
	if err != nil {
		return err
	}

	totalPages := (total + d.pageSize - 1) / d.pageSize
	if page > 1 && page > totalPages {
		r.Shape = ShapeNotFound
		return nil
	}

	r.Foods = foods
	r.Page = page
	r.Total = total
	r.TotalPages = totalPages
	return nil
}

func findGroup(groups []models.CategoryGroup, slug string) *models.CategoryGroup {
	for i := range groups {
		if groups[i].MainCategory == slug || models.Slugify(groups[i].MainCategory) == slug {
			return &groups[i]
		}
	}
	return nil
}

func findSubcategory(g *models.CategoryGroup, slug string) (string, bool) {
	if g == nil {
		return "", false
	}
	for _, sub := range g.Subcategories {
		if sub == slug || models.Slugify(sub) == slug {
			return sub, true
		}
	}
	return "", false
}
