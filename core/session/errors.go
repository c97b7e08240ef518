package session

import "errors"

var (
	// ErrExpired is returned when a session cookie outlived its deadline.
	ErrExpired = errors.New("session has expired")
	// ErrNotAuthenticated is returned when the request carries no principal.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidPrincipal is returned when logging in with an empty identity.
	ErrInvalidPrincipal = errors.New("principal must not be empty")
	// ErrMalformed is returned when a cookie payload cannot be decoded.
	ErrMalformed = errors.New("malformed session payload")
	// ErrSaveSession is returned when writing the session cookie fails.
	ErrSaveSession = errors.New("failed to save session")
)
