package seo

import (
	"encoding/json"
	"net/url"
	"strconv"

	"goflare.io/kalori/internal/models"
)

const schemaContext = "https://schema.org"

// StructuredData is one schema.org JSON-LD document.
type StructuredData struct {
	Type   string
	Fields map[string]any
}

// MarshalJSON emits the document with its @context and @type.
func (d StructuredData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+2)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["@context"] = schemaContext
	out["@type"] = d.Type
	return json.Marshal(out)
}

// Crumb is one breadcrumb hop.
type Crumb struct {
	Name string
	Path string
}

// QA is one curated FAQ entry.
type QA struct {
	Question string
	Answer   string
}

// Organization describes the site operator. Every page carries it.
func (b *Builder) Organization() StructuredData {
	return StructuredData{
		Type: "Organization",
		Fields: map[string]any{
			"name": b.siteName,
			"url":  b.URL("/"),
			"logo": b.URL("/logo.png"),
		},
	}
}

// Breadcrumb lists crumbs in order, positions starting at 1.
func (b *Builder) Breadcrumb(crumbs ...Crumb) StructuredData {
	items := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     b.URL(c.Path),
		})
	}
	return StructuredData{
		Type:   "BreadcrumbList",
		Fields: map[string]any{"itemListElement": items},
	}
}

// FAQ builds an FAQPage document from curated entries.
func (b *Builder) FAQ(qas []QA) StructuredData {
	entities := make([]map[string]any, 0, len(qas))
	for _, qa := range qas {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  qa.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  qa.Answer,
			},
		})
	}
	return StructuredData{
		Type:   "FAQPage",
		Fields: map[string]any{"mainEntity": entities},
	}
}

// Nutrition describes a food's per-serving values. Unknown nutrients are omitted.
func (b *Builder) Nutrition(f models.Food) StructuredData {
	fields := map[string]any{
		"name":        f.Name,
		"servingSize": f.Serving(),
	}
	if kcal, ok := f.CaloriesRounded(); ok {
		fields["calories"] = strconv.Itoa(kcal) + " kcal"
	}

	grams := []struct {
		key   string
		value string
	}{
		{"proteinContent", f.Protein},
		{"carbohydrateContent", f.Carbs},
		{"fatContent", f.Fat},
		{"fiberContent", f.Fiber},
		{"sugarContent", f.Sugar},
	}
	for _, g := range grams {
		if v, ok := models.Number(g.value); ok {
			fields[g.key] = models.FormatNumber(v) + " g"
		}
	}
	if v, ok := models.Number(f.Sodium); ok {
		fields["sodiumContent"] = models.FormatNumber(v) + " mg"
	}
	if v, ok := models.Number(f.Cholesterol); ok {
		fields["cholesterolContent"] = models.FormatNumber(v) + " mg"
	}

	return StructuredData{Type: "NutritionInformation", Fields: fields}
}

// Contact describes the contact page and the organization's support channel.
func (b *Builder) Contact() StructuredData {
	host := "localhost"
	if u, err := url.Parse(b.baseURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return StructuredData{
		Type: "ContactPage",
		Fields: map[string]any{
			"name": b.siteName + " İletişim",
			"url":  b.URL("/contact"),
			"mainEntity": map[string]any{
				"@type": "Organization",
				"name":  b.siteName,
				"contactPoint": map[string]any{
					"@type":             "ContactPoint",
					"contactType":       "customer support",
					"email":             "iletisim@" + host,
					"availableLanguage": []string{"Turkish"},
				},
			},
		},
	}
}
