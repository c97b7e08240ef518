package app

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ochronus/hello-inertia/core/config"
	"github.com/ochronus/hello-inertia/core/health"
	"github.com/ochronus/hello-inertia/core/inertia"
	"github.com/ochronus/hello-inertia/core/logger"
	"github.com/ochronus/hello-inertia/core/session"
	"github.com/ochronus/hello-inertia/core/static"
	"github.com/ochronus/hello-inertia/middleware"
)

// DemoPrincipal is attached by POST /login. No credentials are checked.
const DemoPrincipal session.Principal = "User1"

func (a *App) routes() (http.Handler, error) {
	r := chi.NewRouter()

	security := middleware.BalancedSecurity
	if a.cfg.Mode() != config.ModeProd {
		security = middleware.DevelopmentSecurity
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(a.logger),
		chimw.Recoverer,
		a.metrics.Middleware,
		middleware.SecurityHeaders(security),
		middleware.BodyLimit(middleware.DefaultBodyLimit),
	)

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness(a.logger, a.Ready))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Get("/hey", hey)

	bundle, err := static.Dir(filepath.Join(a.publicDir, "bundle"),
		static.WithStripPrefix(inertia.DefaultPrefix),
		static.WithCacheControl(static.ImmutableCacheControl),
	)
	switch {
	case errors.Is(err, static.ErrDirUnavailable) && a.assets.Dev():
		a.logger.Debug("bundle directory not mounted", logger.Error(err))
	case err != nil:
		return nil, err
	default:
		r.Method(http.MethodGet, inertia.DefaultPrefix+"/*", bundle)
	}

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)

		r.Get("/", a.index)
		r.Get("/contact", a.contact)
		r.Get("/login", a.loginPage)
		r.Post("/login", a.login)
		r.Get("/logout", a.logoutPage)
		r.Post("/logout", a.logout)
		r.Post("/echo", echo)
	})

	return r, nil
}

// authProp mirrors the identity the frontend expects: {"user": {"id": ...}}
// when logged in, {"user": null} otherwise.
func authProp(r *http.Request) map[string]any {
	if p, ok := session.Current(r.Context()); ok {
		return map[string]any{"user": map[string]any{"id": string(p)}}
	}
	return map[string]any{"user": nil}
}

func (a *App) render(w http.ResponseWriter, r *http.Request, component string, props inertia.Props) {
	if err := a.bridge.Render(w, r, component, props); err != nil {
		a.logger.ErrorContext(r.Context(), "page render failed",
			slog.String("component", component),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "Index", inertia.Props{
		"auth":    authProp(r),
		"version": "1",
		"message": "Hello from Inertia + Go!",
	})
}

func (a *App) contact(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "Contact", inertia.Props{
		"user": inertia.Always(map[string]string{
			"name":  "John Doe",
			"email": "johndoe@example.com",
		}),
	})
}

func (a *App) loginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "Login", inertia.Props{"auth": authProp(r)})
}

func (a *App) logoutPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "Logout", inertia.Props{"auth": authProp(r)})
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	r, err := a.sessions.Login(w, r, DemoPrincipal)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "login failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	a.logger.InfoContext(r.Context(), "user logged in", logger.Principal(string(DemoPrincipal)))
	w.WriteHeader(http.StatusOK)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if p, ok := session.Current(r.Context()); ok {
		a.sessions.Logout(w, r)
		a.logger.InfoContext(r.Context(), "user logged out", logger.Principal(string(p)))
	}
	w.WriteHeader(http.StatusOK)
}

func echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(body)
}

func hey(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hey there!"))
}
