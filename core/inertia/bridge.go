package inertia

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"github.com/ochronus/hello-inertia/core/logger"
	"github.com/ochronus/hello-inertia/core/ssr"
)

//go:embed root.html
var rootTemplate string

// DefaultTemplate returns the built-in root template.
func DefaultTemplate() *template.Template {
	return template.Must(template.New("root").Parse(rootTemplate))
}

// LoadTemplate parses the root template at path, falling back to the
// built-in one when the file does not exist.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultTemplate(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	tmpl, err := template.New("root").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, path, err)
	}
	return tmpl, nil
}

// Enabler reports whether server-side rendering is available right now.
type Enabler interface {
	Enabled() bool
}

// Renderer turns a page into server-rendered HTML.
type Renderer interface {
	Render(ctx context.Context, page any) (ssr.Rendered, error)
}

// RenderRecorder observes server-side render outcomes.
type RenderRecorder interface {
	SSRRender(result string)
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithBaseURL sets the origin used in X-Inertia-Location on version conflicts.
func WithBaseURL(url string) Option {
	return func(b *Bridge) {
		b.baseURL = url
	}
}

// WithSSR renders HTML responses through r whenever e is enabled.
func WithSSR(e Enabler, r Renderer) Option {
	return func(b *Bridge) {
		b.ssr = e
		b.renderer = r
	}
}

// WithRecorder reports server-side render outcomes to rec.
func WithRecorder(rec RenderRecorder) Option {
	return func(b *Bridge) {
		if rec != nil {
			b.recorder = rec
		}
	}
}

// WithLogger sets the logger used for render fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// Bridge renders Inertia pages as HTML or JSON depending on the request.
type Bridge struct {
	tmpl     *template.Template
	assets   *Assets
	baseURL  string
	ssr      Enabler
	renderer Renderer
	recorder RenderRecorder
	log      *slog.Logger
}

type nopRecorder struct{}

func (nopRecorder) SSRRender(string) {}

// New returns a bridge rendering tmpl with the given assets.
func New(tmpl *template.Template, assets *Assets, opts ...Option) *Bridge {
	b := &Bridge{
		tmpl:     tmpl,
		assets:   assets,
		recorder: nopRecorder{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With(logger.Component("inertia"))
	return b
}

// Version returns the asset version advertised to clients.
func (b *Bridge) Version() string {
	return b.assets.Version()
}

type templateData struct {
	Page string
	Tags template.HTML
	Head template.HTML
	Body template.HTML
	SSR  bool
}

// Render writes component with props. Client router visits get JSON; a GET
// carrying a stale asset version gets 409 Conflict so the client reloads.
// Nothing is written when an error is returned.
func (b *Bridge) Render(w http.ResponseWriter, r *http.Request, component string, props Props) error {
	page := Page{
		Component: component,
		Props:     resolveProps(r, component, props),
		URL:       r.URL.RequestURI(),
		Version:   b.assets.Version(),
	}

	w.Header().Add("Vary", HeaderInertia)

	if !IsInertia(r) {
		return b.renderHTML(w, r, page)
	}

	if r.Method == http.MethodGet && r.Header.Get(HeaderVersion) != page.Version {
		w.Header().Set(HeaderLocation, b.baseURL+r.URL.RequestURI())
		w.WriteHeader(http.StatusConflict)
		return nil
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	w.Header().Set(HeaderInertia, "true")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func (b *Bridge) renderHTML(w http.ResponseWriter, r *http.Request, page Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	td := templateData{
		Page: string(data),
		Tags: b.assets.Tags(),
	}

	if b.ssr != nil && b.renderer != nil && b.ssr.Enabled() {
		out, err := b.renderer.Render(r.Context(), page)
		if err != nil {
			b.log.WarnContext(r.Context(), "ssr render failed, falling back to client rendering",
				logger.Error(err))
			b.recorder.SSRRender(ssr.RenderFallback)
		} else {
			b.recorder.SSRRender(ssr.RenderOK)
			td.SSR = true
			td.Head = template.HTML(out.HeadHTML()) //nolint:gosec // renderer output
			td.Body = template.HTML(out.Body)       //nolint:gosec // renderer output
		}
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, td); err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(buf.Bytes())
	return err
}
