package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ochronus/hello-inertia/core/cookie"
)

// Manager keeps the whole session in a single protected cookie; there is no
// server-side store.
type Manager struct {
	cookies  *cookie.Manager
	cfg      Config
	recorder Recorder
	now      func() time.Time
}

// NewManager creates a session manager writing cookies through cookies.
func NewManager(cookies *cookie.Manager, cfg Config, opts ...Option) *Manager {
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteLaxMode
	}
	m := &Manager{
		cookies:  cookies,
		cfg:      cfg,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the cookie attributes in use.
func (m *Manager) Config() Config {
	return m.cfg
}

// Load decodes the session cookie of r. A request without the cookie yields
// an anonymous session and no error; a tampered, malformed or expired cookie
// yields an anonymous session and the reason.
func (m *Manager) Load(r *http.Request) (Session, error) {
	raw, err := m.read(r)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if s.IsExpired(m.now()) {
		return Session{}, ErrExpired
	}
	return s, nil
}

// Middleware loads the session into the request context. Invalid cookies are
// cleared and the request continues anonymously.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Load(r)
		if err != nil {
			m.recorder.SessionEvent(EventInvalid)
			m.cookies.Delete(w, m.cfg.Name)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// Login attaches p to a fresh session and writes the cookie. The returned
// request carries the new session in its context.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, p Principal) (*http.Request, error) {
	if p == "" {
		return r, ErrInvalidPrincipal
	}

	now := m.now()
	s := Session{
		ID:        uuid.New(),
		Principal: p,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}
	if err := m.write(w, s); err != nil {
		return r, err
	}
	m.recorder.SessionEvent(EventLogin)
	return r.WithContext(WithSession(r.Context(), s)), nil
}

// Logout clears the session cookie. The returned request is anonymous.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) *http.Request {
	m.cookies.Delete(w, m.cfg.Name)
	m.recorder.SessionEvent(EventLogout)
	return r.WithContext(WithSession(r.Context(), Session{}))
}

func (m *Manager) read(r *http.Request) (string, error) {
	if m.cfg.Security == Signed {
		return m.cookies.GetSigned(r, m.cfg.Name)
	}
	return m.cookies.GetEncrypted(r, m.cfg.Name)
}

func (m *Manager) write(w http.ResponseWriter, s Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	opts := []cookie.Option{
		cookie.WithMaxAge(maxAge(m.cfg.TTL)),
		cookie.WithSecure(m.cfg.Secure),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(m.cfg.SameSite),
	}
	if m.cfg.Security == Signed {
		err = m.cookies.SetSigned(w, m.cfg.Name, string(payload), opts...)
	} else {
		err = m.cookies.SetEncrypted(w, m.cfg.Name, string(payload), opts...)
	}
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// maxAge converts ttl to whole seconds for the Max-Age attribute, clamped to
// the 32-bit range so the value is portable.
func maxAge(ttl time.Duration) int {
	secs := int64(ttl / time.Second)
	if secs > math.MaxInt32 {
		return math.MaxInt32
	}
	if secs < 1 {
		return 1
	}
	return int(secs)
}
