package config

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

// Config is the resolved, immutable configuration snapshot.
type Config struct {
	port             uint16
	secretKey        secretkey.Key
	cookieName       string
	cookieTTLSeconds uint64
	mode             Mode
	ssr              SSRSwitch
	environ          map[string]string
}

// Option configures Load.
type Option func(*options)

type options struct {
	dir     string
	dotenv  string
	environ map[string]string
	extra   []Source
}

// WithDir sets the directory searched for default.* and local.* files.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnvironment replaces the process environment with environ.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithDotEnv sets the path of the .env file merged under the environment.
func WithDotEnv(path string) Option {
	return func(o *options) {
		o.dotenv = path
	}
}

// WithoutDotEnv disables .env loading.
func WithoutDotEnv() Option {
	return func(o *options) {
		o.dotenv = ""
	}
}

// WithSources adds layers applied after the environment and before the legacy overrides.
func WithSources(sources ...Source) Option {
	return func(o *options) {
		o.extra = append(o.extra, sources...)
	}
}

// Load resolves the configuration from defaults, files, environment and legacy
// overrides, in that order, and decodes the secret key.
func Load(opts ...Option) (*Config, error) {
	o := options{
		dir:    DefaultDir,
		dotenv: DefaultDotEnv,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		environ map[string]string
		err     error
	)
	if o.environ != nil {
		environ, err = mergeDotEnv(o.dotenv, o.environ)
	} else {
		environ, err = Environment(o.dotenv)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	sources := fileSources(o.dir)
	sources = append(sources, EnvSource(environ))
	sources = append(sources, o.extra...)
	sources = append(sources, LegacySource(environ))

	settings, err := Resolve(Defaults(), sources...)
	if err != nil {
		return nil, err
	}
	cfg, err := New(settings)
	if err != nil {
		return nil, err
	}
	cfg.environ = environ
	return cfg, nil
}

// Resolve folds sources left to right onto base.
func Resolve(base Settings, sources ...Source) (Settings, error) {
	s := base
	for _, src := range sources {
		if err := src(&s); err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return s, nil
}

// New validates s and builds the snapshot. An empty secret key text behaves like "generate".
func New(s Settings) (*Config, error) {
	key, err := secretkey.Parse(s.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidConfig, ErrInvalidSecretKey, err)
	}

	if strings.TrimSpace(s.CookieName) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, ErrEmptyCookieName)
	}

	mode := DefaultMode
	if s.Mode != "" {
		if mode, err = ParseMode(string(s.Mode)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	ssr, err := ParseSSRSwitch(string(s.SSR))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Config{
		port:             s.Port,
		secretKey:        key,
		cookieName:       s.CookieName,
		cookieTTLSeconds: s.CookieTTLSeconds,
		mode:             mode,
		ssr:              ssr,
	}, nil
}

// Port returns the resolved bind port.
func (c *Config) Port() uint16 { return c.port }

// SecretKey returns the session key material.
func (c *Config) SecretKey() secretkey.Key { return c.secretKey }

// CookieName returns the session cookie name.
func (c *Config) CookieName() string { return c.cookieName }

// CookieTTLSeconds returns the configured session lifetime in seconds.
func (c *Config) CookieTTLSeconds() uint64 { return c.cookieTTLSeconds }

// Environ returns a copy of the environment Load resolved from, with the .env
// file merged in. It is nil for a snapshot built directly with New.
func (c *Config) Environ() map[string]string { return maps.Clone(c.environ) }

// Mode returns the runtime mode.
func (c *Config) Mode() Mode { return c.mode }

// SSR returns the server-side rendering switch.
func (c *Config) SSR() SSRSwitch { return c.ssr }

// LogValue implements slog.LogValuer with the secret key redacted.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("port", int(c.port)),
		slog.Any("secret_key", c.secretKey),
		slog.String("cookie_name", c.cookieName),
		slog.Uint64("cookie_ttl_seconds", c.cookieTTLSeconds),
		slog.String("mode", c.mode.String()),
		slog.String("ssr", c.ssr.String()),
	)
}

func (c *Config) String() string {
	return fmt.Sprintf("config.Config{port=%d secret_key=%s cookie_name=%q cookie_ttl_seconds=%d mode=%s ssr=%s}",
		c.port, secretkey.Redacted, c.cookieName, c.cookieTTLSeconds, c.mode, c.ssr)
}

// Format implements fmt.Formatter; every verb renders String.
func (c *Config) Format(f fmt.State, _ rune) {
	_, _ = fmt.Fprint(f, c.String())
}
