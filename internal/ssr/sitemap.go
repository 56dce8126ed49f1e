package ssr

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"goflare.io/kalori/internal/cache/ttl"
	"goflare.io/kalori/internal/models"
	"goflare.io/kalori/internal/render"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapBuilder struct {
	base string
	seen map[string]struct{}
	set  urlSet
}

func (b *sitemapBuilder) add(path, changeFreq string, priority float64, lastMod string) {
	loc := b.base + path
	if _, ok := b.seen[loc]; ok {
		return
	}
	b.seen[loc] = struct{}{}
	b.set.URLs = append(b.set.URLs, sitemapURL{
		Loc:        loc,
		LastMod:    lastMod,
		ChangeFreq: changeFreq,
		Priority:   strconv.FormatFloat(priority, 'f', 1, 64),
	})
}

// Sitemap lists home, the calculators, every category and subcategory, and
// every food. Each URL appears once. The food list is cached for the sitemap TTL.
func (d *Dispatcher) Sitemap(ctx context.Context) ([]byte, error) {
	groups, err := d.CategoryGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}
	foods, err := ttl.Load(ctx, d.cache, sitemapFoodsKey, d.sitemapTTL, d.provider.AllFoods)
	if err != nil {
		return nil, fmt.Errorf("sitemap foods: %w", err)
	}

	b := &sitemapBuilder{
		base: d.seo.BaseURL(),
		seen: make(map[string]struct{}),
		set:  urlSet{Xmlns: sitemapNamespace},
	}

	b.add("/", "daily", 1.0, "")
	b.add("/all-foods", "daily", 0.8, "")
	b.add("/calculators", "monthly", 0.8, "")
	for _, c := range calculators {
		b.add("/calculators/"+c.Slug, "monthly", c.Priority, "")
	}
	for _, g := range groups {
		b.add(render.CategoryHref(g.MainCategory), "weekly", 0.7, "")
		for _, sub := range g.Subcategories {
			b.add(render.SubcategoryHref(g.MainCategory, sub), "weekly", 0.6, "")
		}
	}
	for _, f := range foods {
		if f.Slug == "" {
			continue
		}
		b.add("/"+f.Slug, "weekly", 0.6, lastModified(f))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(b.set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func lastModified(f models.Food) string {
	t := f.UpdatedAt
	if t.IsZero() {
		t = f.CachedAt
	}
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Robots is the robots.txt body. It points crawlers at the sitemap.
func (d *Dispatcher) Robots() string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	sb.WriteString("Disallow: /api/\n")
	sb.WriteString("Disallow: /search\n")
	sb.WriteString("\n")
	sb.WriteString("Sitemap: " + d.seo.BaseURL() + "/sitemap.xml\n")
	return sb.String()
}
