package session

import (
	"net/http"
	"time"
)

// Security selects how the session cookie is protected.
type Security int

const (
	// Private encrypts the cookie; the client cannot read the principal.
	Private Security = iota
	// Signed leaves the cookie readable but tamper-evident.
	Signed
)

func (s Security) String() string {
	if s == Signed {
		return "signed"
	}
	return "private"
}

// Config holds session cookie attributes, usually derived from the resolved
// configuration snapshot.
type Config struct {
	Name     string
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
	Security Security
}

// Event names a session lifecycle event.
type Event string

const (
	EventLogin   Event = "login"
	EventLogout  Event = "logout"
	EventInvalid Event = "invalid"
)

// Recorder observes session events.
type Recorder interface {
	SessionEvent(Event)
}

type nopRecorder struct{}

func (nopRecorder) SessionEvent(Event) {}

// Option configures a Manager.
type Option func(*Manager)

// WithRecorder registers a recorder for session events.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
