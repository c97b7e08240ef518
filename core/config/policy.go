package config

import (
	"math"
	"strconv"
	"time"
)

// maxTTLSeconds is the largest whole-second count a time.Duration can hold.
const maxTTLSeconds = uint64(math.MaxInt64 / int64(time.Second))

// CookieSecure reports whether session cookies carry the Secure attribute.
// Only prod requires HTTPS; dev and test run over plain HTTP.
func (c *Config) CookieSecure() bool {
	return c.mode == ModeProd
}

// CookieTTL converts the configured seconds into a Duration, saturating at the
// largest representable value instead of overflowing.
func (c *Config) CookieTTL() time.Duration {
	if c.cookieTTLSeconds > maxTTLSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(c.cookieTTLSeconds) * time.Second
}

// EffectivePort returns the bind port after the legacy PORT override.
func (c *Config) EffectivePort() uint16 {
	return c.port
}

// Addr returns the listen address on all interfaces.
func (c *Config) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(int(c.port))
}

// BaseURL is the public URL the rendering bridge advertises to the client.
func (c *Config) BaseURL() string {
	return "http://localhost:" + strconv.Itoa(int(c.port))
}
