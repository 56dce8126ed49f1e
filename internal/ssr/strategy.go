package ssr

import (
	"net/http"
	"path"
	"strings"
)

// Strategy is how a request is answered.
type Strategy int

const (
	// StrategyRender serves a server-rendered document.
	StrategyRender Strategy = iota
	// StrategyClientShell serves the empty development shell.
	StrategyClientShell
	// StrategyBypass hands the request to the static file or API handler.
	StrategyBypass
)

func (s Strategy) String() string {
	switch s {
	case StrategyClientShell:
		return "client-shell"
	case StrategyBypass:
		return "bypass"
	default:
		return "render"
	}
}

var assetPrefixes = []string{"/assets/", "/static/", "/src/", "/@vite/", "/@fs/", "/node_modules/"}

var assetExtensions = map[string]struct{}{
	".js": {}, ".mjs": {}, ".ts": {}, ".tsx": {}, ".css": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".avif": {}, ".svg": {}, ".ico": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".json": {}, ".webmanifest": {},
}

// IsAsset reports whether p names a static file.
func IsAsset(p string) bool {
	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	_, ok := assetExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// IsAPI reports whether p is under the API prefix.
func IsAPI(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// Selector decides between server rendering and the client shell. Production
// always renders; development renders only for crawlers.
type Selector struct {
	dev        bool
	signatures []string
}

func NewSelector(dev bool, signatures []string) *Selector {
	lowered := make([]string, 0, len(signatures))
	for _, s := range signatures {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			lowered = append(lowered, s)
		}
	}
	return &Selector{dev: dev, signatures: lowered}
}

// IsCrawler matches userAgent case-insensitively against the known crawler signatures.
func (s *Selector) IsCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, sig := range s.signatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

// Select picks the strategy for r. Static assets and API paths are never classified.
func (s *Selector) Select(r *http.Request) Strategy {
	p := r.URL.Path
	if IsAsset(p) || IsAPI(p) {
		return StrategyBypass
	}
	if !s.dev || s.IsCrawler(r.UserAgent()) {
		return StrategyRender
	}
	return StrategyClientShell
}
