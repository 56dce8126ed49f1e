// Package ssr classifies request paths into page shapes, resolves their data
// through the time-bounded cache, and renders complete documents.
package ssr

import (
	"net/url"
	"strings"
)

// Shape is the kind of page a path resolves to.
type Shape int

const (
	ShapeNotFound Shape = iota
	ShapeHome
	ShapeSearch
	ShapeAllFoods
	ShapeCalculatorIndex
	ShapeCalculator
	ShapeCategory
	ShapeSubcategory
	ShapeLegal
	ShapeFood
	ShapeError
	// ShapeShell is the empty client shell served to browsers in development.
	ShapeShell
)

func (s Shape) String() string {
	switch s {
	case ShapeHome:
		return "home"
	case ShapeSearch:
		return "search"
	case ShapeAllFoods:
		return "all-foods"
	case ShapeCalculatorIndex:
		return "calculator-index"
	case ShapeCalculator:
		return "calculator"
	case ShapeCategory:
		return "category"
	case ShapeSubcategory:
		return "subcategory"
	case ShapeLegal:
		return "legal"
	case ShapeFood:
		return "food"
	case ShapeError:
		return "error"
	case ShapeShell:
		return "shell"
	default:
		return "not-found"
	}
}

// RouteMatch is the classification of one request.
type RouteMatch struct {
	Shape  Shape
	Params []string
	Query  url.Values
}

// Rule matches paths with exactly Segments segments whose first segment equals
// Literal. An empty Literal matches any first segment. Params are the segments
// from ParamsFrom on. Accept, when set, can still reject a structural match.
type Rule struct {
	Segments   int
	Literal    string
	Shape      Shape
	ParamsFrom int
	Accept     func(params []string) bool
}

// DefaultRules is the site's precedence list. Reserved words come before the
// single-segment food slug fallback, so they always win.
func DefaultRules() []Rule {
	rules := []Rule{
		{Segments: 0, Shape: ShapeHome},
		{Segments: 1, Literal: "search", Shape: ShapeSearch, ParamsFrom: 1},
		{Segments: 1, Literal: "all-foods", Shape: ShapeAllFoods, ParamsFrom: 1},
		{Segments: 1, Literal: "calculators-hub", Shape: ShapeCalculatorIndex, ParamsFrom: 1},
		{Segments: 1, Literal: "calculators", Shape: ShapeCalculatorIndex, ParamsFrom: 1},
	}
	for _, lp := range legalPages {
		rules = append(rules, Rule{Segments: 1, Literal: lp.Slug, Shape: ShapeLegal})
	}
	return append(rules,
		Rule{Segments: 1, Shape: ShapeFood},
		Rule{Segments: 2, Literal: "category", Shape: ShapeCategory, ParamsFrom: 1},
		Rule{Segments: 2, Literal: "calculators", Shape: ShapeCalculator, ParamsFrom: 1, Accept: func(p []string) bool {
			_, ok := LookupCalculator(p[0])
			return ok
		}},
		Rule{Segments: 3, Literal: "category", Shape: ShapeSubcategory, ParamsFrom: 1},
	)
}

// Router evaluates rules in order; the first match wins.
type Router struct {
	rules []Rule
}

// NewRouter builds a Router over rules. A nil slice selects DefaultRules.
func NewRouter(rules []Rule) *Router {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Router{rules: rules}
}

// Segments splits path on "/" and drops empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// Match classifies path. Anything no rule accepts is ShapeNotFound.
func (r *Router) Match(path string, query url.Values) RouteMatch {
	if query == nil {
		query = url.Values{}
	}
	segs := Segments(path)

	for _, rule := range r.rules {
		if rule.Segments != len(segs) {
			continue
		}
		if rule.Literal != "" && (len(segs) == 0 || segs[0] != rule.Literal) {
			continue
		}
		from := min(max(rule.ParamsFrom, 0), len(segs))
		params := append([]string{}, segs[from:]...)
		if rule.Accept != nil && !rule.Accept(params) {
			continue
		}
		return RouteMatch{Shape: rule.Shape, Params: params, Query: query}
	}

	return RouteMatch{Shape: ShapeNotFound, Params: segs, Query: query}
}

// CacheQuery keeps only the query parameters the matched page renders from,
// so tracking parameters do not split the page cache.
func (m RouteMatch) CacheQuery() url.Values {
	var name, value string
	switch m.Shape {
	case ShapeSearch:
		name, value = "q", strings.TrimSpace(m.Query.Get("q"))
	case ShapeAllFoods:
		name, value = "page", m.Query.Get("page")
	}
	if value == "" {
		return nil
	}
	return url.Values{name: {value}}
}
