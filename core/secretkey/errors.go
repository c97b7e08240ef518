package secretkey

import "errors"

var (
	// ErrTooShort is returned when decoded key material is shorter than MinLength bytes.
	ErrTooShort = errors.New("secret key must be at least 64 bytes after decoding")

	// ErrInvalidBase64 is returned when a "base64:" value cannot be decoded.
	ErrInvalidBase64 = errors.New("invalid base64 secret key")

	// ErrInvalidHex is returned when a "hex:" value cannot be decoded.
	ErrInvalidHex = errors.New("invalid hex secret key")

	// ErrUnrecognizedEncoding is returned when an unprefixed value is neither base64 nor hex.
	ErrUnrecognizedEncoding = errors.New("secret key must be provided as base64:<...> or hex:<...> (>= 64 bytes)")

	// ErrGenerate is returned when the system random source fails.
	ErrGenerate = errors.New("failed to generate secret key")
)
