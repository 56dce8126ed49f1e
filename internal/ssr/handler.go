package ssr

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"goflare.io/kalori/internal/cache/page"
)

// PageCache stores rendered 200 responses by request key.
type PageCache interface {
	Get(ctx context.Context, key string) (*page.Document, bool)
	Set(ctx context.Context, key string, doc *page.Document)
}

// Handler is the HTTP front of the dispatcher.
type Handler struct {
	dispatcher *Dispatcher
	selector   *Selector
	pages      PageCache
	static     http.Handler
	logger     *zap.Logger
}

type HandlerOption func(*Handler)

// WithPageCache caches successful server-rendered pages.
func WithPageCache(pages PageCache) HandlerOption {
	return func(h *Handler) { h.pages = pages }
}

// WithStatic serves static assets from fs.
func WithStatic(fs http.Handler) HandlerOption {
	return func(h *Handler) { h.static = fs }
}

func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler returns the site handler wrapped in request ID, logging and recovery middleware.
func NewHandler(d *Dispatcher, sel *Selector, opts ...HandlerOption) http.Handler {
	h := &Handler{dispatcher: d, selector: sel, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}

	var next http.Handler = h
	next = RecoveryMiddleware(h.logger)(next)
	next = LoggingMiddleware(h.logger)(next)
	next = RequestIDMiddleware()(next)
	return next
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/sitemap.xml":
		h.serveSitemap(w, r)
		return
	case "/robots.txt":
		h.write(w, http.StatusOK, "text/plain; charset=utf-8", []byte(h.dispatcher.Robots()))
		return
	}

	switch h.selector.Select(r) {
	case StrategyBypass:
		if h.static != nil && !IsAPI(r.URL.Path) {
			h.static.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)

	case StrategyClientShell:
		resp := h.dispatcher.Shell(r.URL.Path)
		h.write(w, resp.Status, resp.ContentType, []byte(resp.Body))

	default:
		h.serveRendered(w, r)
	}
}

func (h *Handler) serveRendered(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := page.Key(r.URL.Path, h.dispatcher.Match(r.URL.Path, r.URL.Query()).CacheQuery())

	if h.pages != nil {
		if doc, ok := h.pages.Get(ctx, key); ok {
			w.Header().Set("X-Cache", "HIT")
			h.write(w, doc.Status, doc.ContentType, doc.Body)
			return
		}
	}

	resp := h.dispatcher.Dispatch(ctx, r.URL.Path, r.URL.Query())
	body := []byte(resp.Body)

	if h.pages != nil && resp.Status == http.StatusOK {
		h.pages.Set(ctx, key, &page.Document{
			Status:      resp.Status,
			ContentType: resp.ContentType,
			Body:        body,
		})
		w.Header().Set("X-Cache", "MISS")
	}
	h.write(w, resp.Status, resp.ContentType, body)
}

func (h *Handler) serveSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.dispatcher.Sitemap(r.Context())
	if err != nil {
		h.logger.Error("Failed to build sitemap", zap.Error(err), zap.String("requestID", RequestID(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.write(w, http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *Handler) write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("Failed to write response", zap.Error(err))
	}
}
