package inertia

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path"
	"strings"
)

const (
	DefaultManifest    = "public/bundle/manifest.json"
	DefaultPrefix      = "/bundle"
	DevelopmentVersion = "development"

	versionLength = 16
)

// DefaultEntrypoints are the Vite inputs rendered into every page.
var DefaultEntrypoints = []string{"www/app.tsx", "www/index.css"}

// Chunk is one entry of a Vite build manifest.
type Chunk struct {
	File    string   `json:"file"`
	Src     string   `json:"src,omitempty"`
	IsEntry bool     `json:"isEntry,omitempty"`
	CSS     []string `json:"css,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

// Manifest maps source paths to built chunks.
type Manifest map[string]Chunk

// AssetsConfig locates the frontend build.
type AssetsConfig struct {
	// ManifestPath is the Vite manifest written by the production build.
	ManifestPath string

	// Entrypoints are the source paths to include, in order.
	Entrypoints []string

	// Prefix is the URL path the build directory is served under.
	Prefix string

	// DevServerURL, when set, serves entrypoints from the Vite dev server
	// and skips the manifest entirely.
	DevServerURL string
}

func (c AssetsConfig) withDefaults() AssetsConfig {
	if c.ManifestPath == "" {
		c.ManifestPath = DefaultManifest
	}
	if len(c.Entrypoints) == 0 {
		c.Entrypoints = DefaultEntrypoints
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	c.Prefix = "/" + strings.Trim(c.Prefix, "/")
	c.DevServerURL = strings.TrimRight(c.DevServerURL, "/")
	return c
}

// Assets holds the tags and version computed once at startup.
type Assets struct {
	version string
	dev     bool
	tags    template.HTML
}

// LoadAssets resolves the entrypoint tags and the asset version. Without a dev
// server the manifest must exist and list every entrypoint.
func LoadAssets(cfg AssetsConfig) (*Assets, error) {
	cfg = cfg.withDefaults()

	if cfg.DevServerURL != "" {
		return &Assets{
			version: DevelopmentVersion,
			dev:     true,
			tags:    devTags(cfg.DevServerURL, cfg.Entrypoints),
		}, nil
	}

	data, err := os.ReadFile(cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, cfg.ManifestPath, err)
	}

	tags, err := buildTags(m, cfg.Prefix, cfg.Entrypoints)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	return &Assets{
		version: hex.EncodeToString(sum[:])[:versionLength],
		tags:    tags,
	}, nil
}

// Version identifies the current build; it changes whenever the manifest does.
func (a *Assets) Version() string { return a.version }

// Dev reports whether the entrypoints come from the Vite dev server.
func (a *Assets) Dev() bool { return a.dev }

// Tags returns the script, stylesheet and preload tags for the entrypoints.
func (a *Assets) Tags() template.HTML { return a.tags }

const reactRefreshPreamble = `<script type="module">
import RefreshRuntime from "%s/@react-refresh"
RefreshRuntime.injectIntoGlobalHook(window)
window.$RefreshReg$ = () => {}
window.$RefreshSig$ = () => (type) => type
window.__vite_plugin_react_preamble_installed__ = true
</script>
`

func devTags(server string, entrypoints []string) template.HTML {
	esc := template.HTMLEscapeString
	var b strings.Builder

	for _, entry := range entrypoints {
		if isReact(entry) {
			fmt.Fprintf(&b, reactRefreshPreamble, esc(server))
			break
		}
	}
	fmt.Fprintf(&b, "<script type=\"module\" src=\"%s/@vite/client\"></script>\n", esc(server))
	for _, entry := range entrypoints {
		src := esc(server + "/" + strings.TrimLeft(entry, "/"))
		if isCSS(entry) {
			fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", src)
			continue
		}
		fmt.Fprintf(&b, "<script type=\"module\" src=\"%s\"></script>\n", src)
	}
	return template.HTML(b.String()) //nolint:gosec // built from escaped config values
}

func buildTags(m Manifest, prefix string, entrypoints []string) (template.HTML, error) {
	esc := template.HTMLEscapeString
	seen := make(map[string]bool)
	var styles, preloads, scripts strings.Builder

	url := func(file string) string {
		return esc(path.Join(prefix, file))
	}
	addCSS := func(files []string) {
		for _, f := range files {
			if seen[f] {
				continue
			}
			seen[f] = true
			fmt.Fprintf(&styles, "<link rel=\"stylesheet\" href=\"%s\">\n", url(f))
		}
	}

	var preload func(key string)
	preload = func(key string) {
		chunk, ok := m[key]
		if !ok || seen[chunk.File] {
			return
		}
		seen[chunk.File] = true
		addCSS(chunk.CSS)
		fmt.Fprintf(&preloads, "<link rel=\"modulepreload\" href=\"%s\">\n", url(chunk.File))
		for _, imp := range chunk.Imports {
			preload(imp)
		}
	}

	for _, entry := range entrypoints {
		chunk, ok := m[entry]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
		}
		addCSS(chunk.CSS)
		for _, imp := range chunk.Imports {
			preload(imp)
		}
		if isCSS(chunk.File) {
			addCSS([]string{chunk.File})
			continue
		}
		if seen[chunk.File] {
			continue
		}
		seen[chunk.File] = true
		fmt.Fprintf(&scripts, "<script type=\"module\" src=\"%s\"></script>\n", url(chunk.File))
	}

	return template.HTML(styles.String() + preloads.String() + scripts.String()), nil //nolint:gosec // built from escaped manifest values
}

func isCSS(file string) bool {
	switch path.Ext(file) {
	case ".css", ".scss", ".sass", ".less", ".styl":
		return true
	}
	return false
}

func isReact(file string) bool {
	switch path.Ext(file) {
	case ".jsx", ".tsx":
		return true
	}
	return false
}
