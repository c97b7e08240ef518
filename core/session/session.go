package session

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the identity attached to a session. Logging in does not verify
// credentials; a principal only records who the client claimed to be.
type Principal string

// Session is the state carried in the session cookie.
type Session struct {
	// ID changes on every login so that a pre-login cookie cannot be promoted.
	ID        uuid.UUID `json:"id"`
	Principal Principal `json:"principal,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAuthenticated returns true if the session has a principal.
func (s Session) IsAuthenticated() bool {
	return s.Principal != ""
}

// IsExpired reports whether the session is past its deadline at now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
