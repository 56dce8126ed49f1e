package ssr_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"goflare.io/kalori/internal/ssr"
)

func TestRouter_Match(t *testing.T) {
	router := ssr.NewRouter(nil)

	tests := []struct {
		path   string
		shape  ssr.Shape
		params []string
	}{
		{"/", ssr.ShapeHome, []string{}},
		{"", ssr.ShapeHome, []string{}},
		{"/search", ssr.ShapeSearch, []string{}},
		{"/all-foods", ssr.ShapeAllFoods, []string{}},
		{"/calculators", ssr.ShapeCalculatorIndex, []string{}},
		{"/calculators-hub", ssr.ShapeCalculatorIndex, []string{}},
		{"/calculators/vucut-kitle-indeksi", ssr.ShapeCalculator, []string{"vucut-kitle-indeksi"}},
		{"/calculators/yok", ssr.ShapeNotFound, []string{"calculators", "yok"}},
		{"/privacy-policy", ssr.ShapeLegal, []string{"privacy-policy"}},
		{"/about", ssr.ShapeLegal, []string{"about"}},
		{"/domates", ssr.ShapeFood, []string{"domates"}},
		{"/domates/", ssr.ShapeFood, []string{"domates"}},
		{"/category/sebzeler", ssr.ShapeCategory, []string{"sebzeler"}},
		{"/category/sebzeler/yesil", ssr.ShapeSubcategory, []string{"sebzeler", "yesil"}},
		{"/category/a/b/c", ssr.ShapeNotFound, []string{"category", "a", "b", "c"}},
		{"/category", ssr.ShapeFood, []string{"category"}},
		{"/domates/extra", ssr.ShapeNotFound, []string{"domates", "extra"}},
		{"/a/b/c/d", ssr.ShapeNotFound, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := router.Match(tt.path, nil)
			assert.Equal(t, tt.shape, m.Shape, "shape of %q", tt.path)
			assert.Equal(t, tt.params, m.Params)
			assert.NotNil(t, m.Query)
		})
	}
}

func TestRouter_ReservedWordsBeatSlugs(t *testing.T) {
	router := ssr.NewRouter(nil)
	for _, reserved := range []string{"search", "all-foods", "calculators", "calculators-hub", "kvkk", "contact", "terms-of-use", "cookie-policy"} {
		m := router.Match("/"+reserved, nil)
		assert.NotEqual(t, ssr.ShapeFood, m.Shape, reserved)
	}
}

func TestRouter_KeepsQuery(t *testing.T) {
	q := url.Values{"q": {"elma"}}
	m := ssr.NewRouter(nil).Match("/search", q)
	assert.Equal(t, "elma", m.Query.Get("q"))
}

func TestRouter_CustomRules(t *testing.T) {
	router := ssr.NewRouter([]ssr.Rule{
		{Segments: 1, Literal: "ozel", Shape: ssr.ShapeLegal},
	})
	assert.Equal(t, ssr.ShapeLegal, router.Match("/ozel", nil).Shape)
	assert.Equal(t, ssr.ShapeNotFound, router.Match("/", nil).Shape)
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ssr.Segments("//a///b/"))
	assert.Empty(t, ssr.Segments("/"))
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "food", ssr.ShapeFood.String())
	assert.Equal(t, "not-found", ssr.ShapeNotFound.String())
	assert.Equal(t, "error", ssr.ShapeError.String())
	assert.Equal(t, "shell", ssr.ShapeShell.String())
}

func TestRouteMatch_CacheQuery(t *testing.T) {
	router := ssr.NewRouter(nil)
	query := url.Values{"q": {" elma "}, "page": {"2"}, "utm_source": {"x"}}

	tests := []struct {
		path string
		want url.Values
	}{
		{"/search", url.Values{"q": {"elma"}}},
		{"/all-foods", url.Values{"page": {"2"}}},
		{"/domates", nil},
		{"/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, router.Match(tt.path, query).CacheQuery())
		})
	}

	assert.Nil(t, router.Match("/search", url.Values{"utm_source": {"x"}}).CacheQuery())
}
