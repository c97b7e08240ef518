package config

import (
	"fmt"
	"strings"
)

// Mode is the runtime mode of the service.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
	ModeTest Mode = "test"
)

// ParseMode parses a mode case-insensitively. "development" and "production"
// are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return ModeDev, nil
	case "prod", "production":
		return ModeProd, nil
	case "test":
		return ModeTest, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidMode, s)
}

func (m Mode) String() string {
	return string(m)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// SSRSwitch overrides the automatic server-side rendering decision.
type SSRSwitch string

const (
	// SSRAuto enables SSR only in prod mode without an active dev renderer.
	SSRAuto SSRSwitch = "auto"
	// SSROn forces SSR on; the renderer artifact must still exist.
	SSROn SSRSwitch = "on"
	// SSROff disables SSR regardless of mode.
	SSROff SSRSwitch = "off"
)

// ParseSSRSwitch accepts auto, on/true/1 and off/false/0, case-insensitively.
func ParseSSRSwitch(s string) (SSRSwitch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SSRAuto, nil
	case "on", "true", "1":
		return SSROn, nil
	case "off", "false", "0":
		return SSROff, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidSSRSwitch, s)
}

func (s SSRSwitch) String() string {
	return string(s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SSRSwitch) UnmarshalText(text []byte) error {
	parsed, err := ParseSSRSwitch(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SSRSwitch) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
