// Package config resolves the application configuration snapshot from layered
// sources and exposes the session policy derived from it.
//
// Sources are applied in increasing precedence:
//
//  1. Built-in defaults (port 1337, cookie "auth-example", TTL 300s, mode prod,
//     secret key "generate", SSR auto).
//  2. Optional files: config/default.* then config/local.*, where * is the first
//     of toml, yaml, yml or json that exists.
//  3. Environment variables with the APP__ prefix (APP__PORT, APP__COOKIE_NAME,
//     APP__COOKIE_TTL_SECONDS, APP__MODE, APP__SECRET_KEY, APP__SSR), parsed with
//     the caarlos0/env library. A .env file is read with godotenv and merged under
//     the process environment.
//  4. Legacy unprefixed overrides: PORT (common on hosting platforms) and INERTIA_SSR.
//
// The raw secret key text from whichever layer set it last is then decoded by
// the secretkey package. Any failure aborts loading; there is no partially
// resolved configuration.
//
// Basic usage:
//
//	import "github.com/ochronus/hello-inertia/core/config"
//
//	func main() {
//		cfg, err := config.Load()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		srv := server.New(cfg.Addr())
//		secure := cfg.CookieSecure()
//	}
//
// # Testing
//
// Load never touches the process environment when an explicit environment is
// supplied, and file lookups are relative to a configurable directory:
//
//	cfg, err := config.Load(
//		config.WithDir(t.TempDir()),
//		config.WithEnvironment(map[string]string{"APP__MODE": "test"}),
//		config.WithoutDotEnv(),
//	)
//
// # Immutability
//
// A *Config is read-only after Load returns and can be shared by any number of
// goroutines without synchronization. Its secret key is never rendered by fmt,
// slog or String; the placeholder "[REDACTED]" is printed instead.
package config
