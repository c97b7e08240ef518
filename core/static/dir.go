package static

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ImmutableCacheControl suits content-hashed build output.
const ImmutableCacheControl = "public, max-age=31536000, immutable"

// dirConfig holds configuration for directory serving
type dirConfig struct {
	root         string
	stripPrefix  string
	cacheControl string
}

// DirOption configures directory serving behavior
type DirOption func(*dirConfig)

// WithStripPrefix removes the given prefix from the URL path before serving files.
// This is useful when mounting static files under a specific route prefix.
func WithStripPrefix(prefix string) DirOption {
	return func(c *dirConfig) {
		c.stripPrefix = prefix
	}
}

// WithCacheControl sets the Cache-Control header on every served file.
func WithCacheControl(value string) DirOption {
	return func(c *dirConfig) {
		c.cacheControl = value
	}
}

// Dir creates a handler that serves files from a directory.
// Directory listing is disabled. The directory must exist when Dir is called.
func Dir(root string, opts ...DirOption) (http.Handler, error) {
	cfg := &dirConfig{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(cfg)
	}

	info, err := os.Stat(cfg.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirUnavailable, cfg.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s: not a directory", ErrDirUnavailable, cfg.root)
	}

	var h http.Handler = http.FileServer(neuteredFileSystem{http.Dir(cfg.root)})
	if cfg.stripPrefix != "" {
		h = http.StripPrefix(cfg.stripPrefix, h)
	}
	if cfg.cacheControl == "" {
		return h, nil
	}

	next := h
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cfg.cacheControl)
		next.ServeHTTP(w, r)
	}), nil
}
