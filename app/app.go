package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ochronus/hello-inertia/core/config"
	"github.com/ochronus/hello-inertia/core/cookie"
	"github.com/ochronus/hello-inertia/core/inertia"
	"github.com/ochronus/hello-inertia/core/logger"
	"github.com/ochronus/hello-inertia/core/metrics"
	"github.com/ochronus/hello-inertia/core/server"
	"github.com/ochronus/hello-inertia/core/session"
	"github.com/ochronus/hello-inertia/core/ssr"
)

const (
	// DefaultPublicDir holds the frontend build and the dev server hot file.
	DefaultPublicDir = "public"

	// DefaultRootTemplate overrides the built-in root template when present.
	DefaultRootTemplate = "www/root.html"
)

// ErrNotReady is reported by the readiness check before Run starts serving
// and once shutdown has begun.
var ErrNotReady = errors.New("app: not accepting traffic")

// App owns every long-lived component of the service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *server.Server
	cookies    *cookie.Manager
	sessions   *session.Manager
	supervisor *ssr.Supervisor
	assets     *inertia.Assets
	bridge     *inertia.Bridge
	metrics    *metrics.Metrics

	publicDir    string
	rootTemplate string
	detect       ssr.DetectConfig
	ready        atomic.Bool
}

// Option configures an App.
type Option func(*App) error

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = l
		return nil
	}
}

// WithServer replaces the HTTP server built from SERVER_* variables.
func WithServer(s *server.Server) Option {
	return func(a *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		a.server = s
		return nil
	}
}

// WithSupervisor replaces the SSR supervisor.
func WithSupervisor(s *ssr.Supervisor) Option {
	return func(a *App) error {
		if s == nil {
			return errors.New("supervisor cannot be nil")
		}
		a.supervisor = s
		return nil
	}
}

// WithAssets skips dev-server detection and manifest loading.
func WithAssets(assets *inertia.Assets) Option {
	return func(a *App) error {
		if assets == nil {
			return errors.New("assets cannot be nil")
		}
		a.assets = assets
		return nil
	}
}

// WithPublicDir sets the directory holding bundle/ and the hot file.
func WithPublicDir(dir string) Option {
	return func(a *App) error {
		a.publicDir = dir
		return nil
	}
}

// WithRootTemplate sets the root template path.
func WithRootTemplate(path string) Option {
	return func(a *App) error {
		a.rootTemplate = path
		return nil
	}
}

// WithDetectConfig tunes dev-server detection.
func WithDetectConfig(cfg ssr.DetectConfig) Option {
	return func(a *App) error {
		a.detect = cfg
		return nil
	}
}

// New wires the application from cfg. It detects the frontend dev server and
// loads the asset manifest, so it may block briefly on a local HTTP probe.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	a := &App{
		cfg:          cfg,
		logger:       slog.Default(),
		publicDir:    DefaultPublicDir,
		rootTemplate: DefaultRootTemplate,
		metrics:      metrics.New(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	cookies, err := cookie.New(cfg.SecretKey(), cookie.WithSecure(cfg.CookieSecure()))
	if err != nil {
		return nil, fmt.Errorf("cookie manager: %w", err)
	}
	a.cookies = cookies
	a.sessions = session.NewManager(cookies, session.Config{
		Name:   cfg.CookieName(),
		TTL:    cfg.CookieTTL(),
		Secure: cfg.CookieSecure(),
	}, session.WithRecorder(a.metrics))

	if a.assets == nil {
		if a.detect.HotFile == "" {
			a.detect.HotFile = filepath.Join(a.publicDir, "hot")
		}
		devURL, devActive := ssr.DetectDevServer(ctx, a.detect)
		assetsCfg := inertia.AssetsConfig{
			ManifestPath: filepath.Join(a.publicDir, "bundle", "manifest.json"),
		}
		if devActive {
			assetsCfg.DevServerURL = devURL
			a.logger.InfoContext(ctx, "frontend dev server detected", logger.Addr(devURL))
		}
		if a.assets, err = inertia.LoadAssets(assetsCfg); err != nil {
			return nil, err
		}
	}

	if a.supervisor == nil {
		a.supervisor = ssr.New(ssr.Config{},
			ssr.WithLogger(a.logger),
			ssr.WithStateHook(a.metrics.SSRState),
		)
	}

	tmpl, err := inertia.LoadTemplate(a.rootTemplate)
	if err != nil {
		return nil, err
	}
	a.bridge = inertia.New(tmpl, a.assets,
		inertia.WithBaseURL(cfg.BaseURL()),
		inertia.WithSSR(a.supervisor, ssr.NewClient(a.supervisor.URL())),
		inertia.WithRecorder(a.metrics),
		inertia.WithLogger(a.logger),
	)

	if a.server == nil {
		srvCfg, err := server.ConfigFromEnv(cfg.Addr(), cfg.Environ())
		if err != nil {
			return nil, err
		}
		if a.server, err = server.NewFromConfig(srvCfg,
			server.WithLogger(a.logger),
			server.WithOnShutdown(func() { a.ready.Store(false) }),
		); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Run starts the SSR renderer, then serves HTTP until ctx is canceled.
// The renderer is stopped on every return path, including panics.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		_ = a.supervisor.Stop()
	}()

	if err := a.supervisor.Start(ctx, ssr.Gate{
		Mode:            a.cfg.Mode(),
		Switch:          a.cfg.SSR(),
		DevServerActive: a.assets.Dev(),
	}); err != nil {
		return err
	}

	handler, err := a.Handler()
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "starting application",
		logger.Addr(a.cfg.Addr()),
		slog.String("mode", a.cfg.Mode().String()),
		logger.Version(a.assets.Version()),
		slog.String("ssr", a.supervisor.State().String()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, handler))
	a.ready.Store(true)

	err = g.Wait()
	a.ready.Store(false)
	return err
}

// Ready reports whether the app accepts traffic.
func (a *App) Ready(context.Context) error {
	if !a.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Metrics exposes the application's collectors.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Supervisor exposes the SSR supervisor.
func (a *App) Supervisor() *ssr.Supervisor {
	return a.supervisor
}

// Sessions exposes the session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Handler builds the routed handler with the middleware stack.
func (a *App) Handler() (http.Handler, error) {
	return a.routes()
}
