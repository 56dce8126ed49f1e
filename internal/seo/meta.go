// Package seo builds the per-page metadata bundle: meta tags and schema.org
// structured-data documents. Everything here is a pure function of its inputs.
package seo

import (
	"strings"
)

// MetaTags is the fixed set of head metadata every page carries.
type MetaTags struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Robots      string

	OGTitle       string
	OGDescription string
	OGURL         string
	OGType        string
	OGImage       string
	OGSiteName    string

	TwitterCard string
}

// Page is what a page shape knows about itself before metadata is derived.
type Page struct {
	Title       string
	Description string
	Keywords    []string
	Path        string
	Image       string
	Article     bool
	NoIndex     bool
}

// Bundle is a page's complete metadata: tags plus structured data.
type Bundle struct {
	Meta MetaTags
	Data []StructuredData
}

// Builder derives metadata from a single configured base URL.
type Builder struct {
	baseURL  string
	siteName string
}

// NewBuilder returns a Builder. baseURL must be absolute; a trailing slash is dropped.
func NewBuilder(baseURL, siteName string) *Builder {
	return &Builder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		siteName: siteName,
	}
}

// BaseURL returns the configured base without a trailing slash.
func (b *Builder) BaseURL() string { return b.baseURL }

// SiteName returns the configured site name.
func (b *Builder) SiteName() string { return b.siteName }

// URL makes path absolute. Absolute http(s) inputs are returned unchanged.
func (b *Builder) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" || path == "/" {
		return b.baseURL + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// Meta is the one place MetaTags are assembled, so every shape yields the same
// fully populated structure.
func (b *Builder) Meta(p Page) MetaTags {
	canonical := b.URL(p.Path)

	m := MetaTags{
		Title:       p.Title,
		Description: p.Description,
		Keywords:    strings.Join(p.Keywords, ", "),
		Canonical:   canonical,
		Robots:      "index, follow",

		OGTitle:       p.Title,
		OGDescription: p.Description,
		OGURL:         canonical,
		OGType:        "website",
		OGSiteName:    b.siteName,

		TwitterCard: "summary",
	}
	if p.Article {
		m.OGType = "article"
	}
	if p.NoIndex {
		m.Robots = "noindex, follow"
	}
	if p.Image != "" {
		m.OGImage = b.URL(p.Image)
		m.TwitterCard = "summary_large_image"
	}
	return m
}

func (b *Builder) bundle(p Page, data ...StructuredData) Bundle {
	return Bundle{
		Meta: b.Meta(p),
		Data: append([]StructuredData{b.Organization()}, data...),
	}
}
