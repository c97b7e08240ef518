package config

import (
	"fmt"
	"log/slog"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

const (
	DefaultPort             uint16 = 1337
	DefaultCookieName              = "auth-example"
	DefaultCookieTTLSeconds uint64 = 5 * 60
	DefaultMode                    = ModeProd
	DefaultSSR                     = SSRAuto
	DefaultSecretKey               = secretkey.GenerateToken
)

// Settings is the raw, mutable record every Source writes into. It carries the
// secret key as text; Load decodes it only after all sources have been applied.
//
// Field names in files use the snake_case form of the tags below; environment
// variables use the tag prefixed with APP__.
type Settings struct {
	Port             uint16    `env:"PORT" yaml:"port" toml:"port" json:"port"`
	SecretKey        string    `env:"SECRET_KEY" yaml:"secret_key" toml:"secret_key" json:"secret_key"`
	CookieName       string    `env:"COOKIE_NAME" yaml:"cookie_name" toml:"cookie_name" json:"cookie_name"`
	CookieTTLSeconds uint64    `env:"COOKIE_TTL_SECONDS" yaml:"cookie_ttl_seconds" toml:"cookie_ttl_seconds" json:"cookie_ttl_seconds"`
	Mode             Mode      `env:"MODE" yaml:"mode" toml:"mode" json:"mode"`
	SSR              SSRSwitch `env:"SSR" yaml:"ssr" toml:"ssr" json:"ssr"`
}

// Defaults returns the lowest-precedence layer.
func Defaults() Settings {
	return Settings{
		Port:             DefaultPort,
		SecretKey:        DefaultSecretKey,
		CookieName:       DefaultCookieName,
		CookieTTLSeconds: DefaultCookieTTLSeconds,
		Mode:             DefaultMode,
		SSR:              DefaultSSR,
	}
}

// LogValue implements slog.LogValuer. The secret key text is never emitted.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("port", int(s.Port)),
		slog.String("secret_key", secretkey.Redacted),
		slog.String("cookie_name", s.CookieName),
		slog.Uint64("cookie_ttl_seconds", s.CookieTTLSeconds),
		slog.String("mode", s.Mode.String()),
		slog.String("ssr", s.SSR.String()),
	)
}

// Format implements fmt.Formatter so that printing Settings never leaks the secret.
func (s Settings) Format(f fmt.State, _ rune) {
	_, _ = fmt.Fprintf(f, "{Port:%d SecretKey:%s CookieName:%s CookieTTLSeconds:%d Mode:%s SSR:%s}",
		s.Port, secretkey.Redacted, s.CookieName, s.CookieTTLSeconds, s.Mode, s.SSR)
}
