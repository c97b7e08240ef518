package config

import "errors"

var (
	// ErrInvalidConfig wraps every failure returned by Load.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidFile indicates a configuration or .env file that exists but cannot be parsed.
	ErrInvalidFile = errors.New("malformed configuration file")

	// ErrInvalidEnv indicates an environment variable that is set but cannot be parsed into its field.
	ErrInvalidEnv = errors.New("malformed environment variable")

	// ErrInvalidSecretKey indicates that the secret key could not be decoded.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrEmptyCookieName is returned when the cookie name resolves to an empty string.
	ErrEmptyCookieName = errors.New("cookie name must not be empty")

	// ErrInvalidMode is returned for a mode outside dev, prod and test.
	ErrInvalidMode = errors.New("mode must be one of dev, prod, test")

	// ErrInvalidSSRSwitch is returned for an SSR switch outside auto, on and off.
	ErrInvalidSSRSwitch = errors.New("ssr must be one of auto, on, off")
)
