package ssr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/cache/page"
	"goflare.io/kalori/internal/config"
	"goflare.io/kalori/internal/provider"
	"goflare.io/kalori/internal/ssr"
)

func newTestHandler(t *testing.T, p provider.Provider, dev bool, opts ...ssr.HandlerOption) http.Handler {
	t.Helper()
	d := newDispatcher(t, p, nil)
	return ssr.NewHandler(d, ssr.NewSelector(dev, config.DefaultCrawlerSignatures), opts...)
}

func serve(h http.Handler, method, target, ua string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	if ua != "" {
		r.Header.Set("User-Agent", ua)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandler_RendersFood(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false)

	w := serve(h, http.MethodGet, "/domates", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "Domates Kaç Kalori?")
}

func TestHandler_KeepsClientRequestID(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHandler_NotFoundAndServerError(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false)
	w := serve(h, http.MethodGet, "/category/unknown-category", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")

	failing := failingProvider{Memory: provider.NewMemory(fixtureFoods()...), err: errors.New("io")}
	h = newTestHandler(t, failing, false)
	w = serve(h, http.MethodGet, "/domates", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Bir Hata Oluştu")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(), false)

	w := serve(h, http.MethodPost, "/domates", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
}

func TestHandler_Head(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false)

	w := serve(h, http.MethodHead, "/domates", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "0", w.Header().Get("Content-Length"))
}

func TestHandler_SitemapAndRobots(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), true)

	w := serve(h, http.MethodGet, "/sitemap.xml", "Mozilla/5.0")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<loc>"+baseURL+"/domates</loc>")

	w = serve(h, http.MethodGet, "/robots.txt", "Mozilla/5.0")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: ")
}

func TestHandler_DevShellForBrowsers(t *testing.T) {
	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), true)

	w := serve(h, http.MethodGet, "/domates", "Mozilla/5.0")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div id="root"></div>`)
	assert.NotContains(t, w.Body.String(), "Kaç Kalori")

	w = serve(h, http.MethodGet, "/domates", googlebot)
	assert.Contains(t, w.Body.String(), "Domates Kaç Kalori?")
}

func TestHandler_StaticAndAPIBypass(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false, ssr.WithStatic(http.FileServer(http.Dir(dir))))

	w := serve(h, http.MethodGet, "/assets/app.js", googlebot)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = serve(h, http.MethodGet, "/api/foods", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "<!DOCTYPE html>")
}

func TestHandler_PageCache(t *testing.T) {
	local, err := page.NewLocalStore(1<<20, zap.NewNop())
	require.NoError(t, err)
	pages, err := page.New(local, nil, time.Minute, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pages.Close() })

	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false, ssr.WithPageCache(pages))

	first := serve(h, http.MethodGet, "/domates", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := serve(h, http.MethodGet, "/domates", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	missing := serve(h, http.MethodGet, "/yok", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	again := serve(h, http.MethodGet, "/yok", "")
	assert.Empty(t, again.Header().Get("X-Cache"), "only 200 responses are cached")

	_, ok := pages.Get(context.Background(), "/yok")
	assert.False(t, ok)
}

func TestHandler_PageCacheIgnoresUnusedQuery(t *testing.T) {
	local, err := page.NewLocalStore(1<<20, zap.NewNop())
	require.NoError(t, err)
	pages, err := page.New(local, nil, time.Minute, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pages.Close() })

	h := newTestHandler(t, provider.NewMemory(fixtureFoods()...), false, ssr.WithPageCache(pages))

	first := serve(h, http.MethodGet, "/domates?utm_source=a", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := serve(h, http.MethodGet, "/domates?utm_source=b&fbclid=1", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	elma := serve(h, http.MethodGet, "/search?q=elma&utm_source=a", "")
	assert.Equal(t, "MISS", elma.Header().Get("X-Cache"))
	domates := serve(h, http.MethodGet, "/search?q=domates", "")
	assert.Equal(t, "MISS", domates.Header().Get("X-Cache"), "q selects a different page")
	again := serve(h, http.MethodGet, "/search?q=elma", "")
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.Equal(t, elma.Body.String(), again.Body.String())
}
