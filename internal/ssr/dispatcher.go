package ssr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/cache/ttl"
	"goflare.io/kalori/internal/provider"
	"goflare.io/kalori/internal/render"
	"goflare.io/kalori/internal/seo"
)

const (
	htmlContentType = "text/html; charset=utf-8"

	categoriesKey   = "categories:groups"
	sitemapFoodsKey = "sitemap:foods"
)

var (
	ErrNoProvider = errors.New("ssr: provider is required")
	ErrNoCache    = errors.New("ssr: cache is required")
	ErrNoSEO      = errors.New("ssr: metadata builder is required")
)

// fallbackDocument is served when even the error page cannot be rendered.
const fallbackDocument = `<!DOCTYPE html>
<html lang="tr">
<head><meta charset="utf-8"><title>Bir Hata Oluştu</title><meta name="robots" content="noindex, nofollow"></head>
<body><h1>Bir Hata Oluştu</h1><p>Lütfen daha sonra tekrar deneyin.</p></body>
</html>
`

// Options wires a Dispatcher.
type Options struct {
	Provider provider.Provider
	Cache    *ttl.Cache
	SEO      *seo.Builder
	Slugs    *SlugFilter
	Router   *Router
	Logger   *zap.Logger

	CategoryTTL time.Duration
	SitemapTTL  time.Duration

	PageSize      int
	SearchLimit   int
	FeaturedCount int

	DevClientEntry string
}

// Response is a fully rendered reply.
type Response struct {
	Status      int
	ContentType string
	Body        string
	Shape       Shape
}

// Dispatcher turns a request path into a complete HTML document. Data is
// resolved first; rendering is synchronous over the resolved data.
type Dispatcher struct {
	provider provider.Provider
	cache    *ttl.Cache
	seo      *seo.Builder
	slugs    *SlugFilter
	router   *Router
	logger   *zap.Logger
	tracer   trace.Tracer

	categoryTTL time.Duration
	sitemapTTL  time.Duration

	pageSize      int
	searchLimit   int
	featuredCount int

	devClientEntry string
}

func NewDispatcher(o Options) (*Dispatcher, error) {
	if o.Provider == nil {
		return nil, ErrNoProvider
	}
	if o.Cache == nil {
		return nil, ErrNoCache
	}
	if o.SEO == nil {
		return nil, ErrNoSEO
	}
	if o.Router == nil {
		o.Router = NewRouter(nil)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.PageSize <= 0 {
		o.PageSize = 48
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = 50
	}
	if o.FeaturedCount <= 0 {
		o.FeaturedCount = 12
	}
	if o.DevClientEntry == "" {
		o.DevClientEntry = "/src/main.tsx"
	}

	return &Dispatcher{
		provider:       o.Provider,
		cache:          o.Cache,
		seo:            o.SEO,
		slugs:          o.Slugs,
		router:         o.Router,
		logger:         o.Logger,
		tracer:         otel.Tracer("ssr"),
		categoryTTL:    o.CategoryTTL,
		sitemapTTL:     o.SitemapTTL,
		pageSize:       o.PageSize,
		searchLimit:    o.SearchLimit,
		featuredCount:  o.FeaturedCount,
		devClientEntry: o.DevClientEntry,
	}, nil
}

// Match classifies path without resolving any data.
func (d *Dispatcher) Match(path string, query url.Values) RouteMatch {
	return d.router.Match(path, query)
}

// Dispatch classifies, resolves and renders path. It never fails: upstream
// errors and panics become the generic 500 page.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, query url.Values) (resp Response) {
	ctx, span := d.tracer.Start(ctx, "ssr.Dispatch", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			d.logger.Error("Dispatch panicked", zap.String("path", path), zap.Any("panic", rec), zap.Stack("stack"))
			resp = d.ServerError()
		}
	}()

	m := d.router.Match(path, query)
	span.SetAttributes(attribute.String("shape", m.Shape.String()))

	resolved, err := d.Resolve(ctx, path, m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve")
		d.logger.Error("Failed to resolve page",
			zap.String("path", path),
			zap.Stringer("shape", m.Shape),
			zap.Error(err))
		return d.ServerError()
	}

	body, err := d.Render(ctx, resolved)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render")
		d.logger.Error("Failed to render page",
			zap.String("path", path),
			zap.Stringer("shape", resolved.Shape),
			zap.Error(err))
		return d.ServerError()
	}

	span.SetAttributes(attribute.Int("status", resolved.Status))
	return Response{
		Status:      resolved.Status,
		ContentType: htmlContentType,
		Body:        body,
		Shape:       resolved.Shape,
	}
}

// ServerError renders the generic failure page. It reads no data.
func (d *Dispatcher) ServerError() Response {
	resp := Response{
		Status:      http.StatusInternalServerError,
		ContentType: htmlContentType,
		Body:        fallbackDocument,
		Shape:       ShapeError,
	}

	view := render.MessageView{
		Chrome:  render.NewChrome(d.seo.SiteName(), nil, legalLinks()),
		Title:   "Bir Hata Oluştu",
		Message: "Beklenmeyen bir hata oluştu. Lütfen daha sonra tekrar deneyin.",
	}
	body, err := render.Page(render.ViewMessage, view, d.seo.ServerError())
	if err != nil {
		d.logger.Error("Failed to render error page", zap.Error(err))
		return resp
	}
	resp.Body = body
	return resp
}

// Shell renders the client-rendered development document for path.
func (d *Dispatcher) Shell(path string) Response {
	body, err := render.Shell(d.seo.Shell(path), d.devClientEntry)
	if err != nil {
		d.logger.Error("Failed to render client shell", zap.String("path", path), zap.Error(err))
		return d.ServerError()
	}
	return Response{Status: http.StatusOK, ContentType: htmlContentType, Body: body, Shape: ShapeShell}
}
