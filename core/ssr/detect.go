package ssr

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultHotFile      = "public/hot"
	DefaultDevServerURL = "http://localhost:5173"
	devClientPath       = "/@vite/client"
	defaultProbeTimeout = 300 * time.Millisecond
)

// DetectConfig controls dev-server detection. Zero fields take defaults.
type DetectConfig struct {
	// HotFile is written by the frontend dev server while it runs; its
	// content is the server's URL.
	HotFile string
	// ProbeURL is the dev server origin probed when the hot file is absent.
	ProbeURL string
	// DisableProbe skips the HTTP probe.
	DisableProbe bool
	Timeout      time.Duration
	Client       *http.Client
}

// DetectDevServer reports whether a frontend dev server is active and its URL.
func DetectDevServer(ctx context.Context, cfg DetectConfig) (string, bool) {
	if cfg.HotFile == "" {
		cfg.HotFile = DefaultHotFile
	}
	if cfg.ProbeURL == "" {
		cfg.ProbeURL = DefaultDevServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProbeTimeout
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}

	if data, err := os.ReadFile(cfg.HotFile); err == nil {
		if u := strings.TrimSpace(string(data)); u != "" {
			return strings.TrimRight(u, "/"), true
		}
		return cfg.ProbeURL, true
	}

	if cfg.DisableProbe {
		return "", false
	}

	origin := strings.TrimRight(cfg.ProbeURL, "/")

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+devClientPath, nil)
	if err != nil {
		return "", false
	}
	resp, err := cfg.Client.Do(req)
	if err != nil {
		return "", false
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	return origin, true
}
