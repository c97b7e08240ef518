package secretkey

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// MinLength is the minimum accepted key length in bytes (512 bits).
	MinLength = 64

	// Redacted is rendered in place of key material in every diagnostic output.
	Redacted = "[REDACTED]"

	// GenerateToken asks Parse for a freshly generated random key.
	GenerateToken = "generate"

	base64Prefix = "base64:"
	hexPrefix    = "hex:"
)

// Key is validated secret key material. The zero value holds no material and
// is rejected by every consumer; obtain keys through Parse, Generate or FromBytes.
type Key struct {
	material []byte
}

// Parse decodes a textual key. See the package documentation for accepted forms.
func Parse(s string) (Key, error) {
	v := strings.TrimSpace(s)
	if v == "" || strings.EqualFold(v, GenerateToken) {
		return Generate()
	}

	if encoded, ok := strings.CutPrefix(v, base64Prefix); ok {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
		}
		return FromBytes(decoded)
	}

	if encoded, ok := strings.CutPrefix(v, hexPrefix); ok {
		decoded, err := decodeHex(encoded)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidHex, err)
		}
		return FromBytes(decoded)
	}

	if decoded, err := base64.StdEncoding.DecodeString(v); err == nil {
		return FromBytes(decoded)
	}
	if decoded, err := decodeHex(v); err == nil {
		return FromBytes(decoded)
	}

	return Key{}, ErrUnrecognizedEncoding
}

// Generate returns a random key of MinLength bytes read from crypto/rand.
func Generate() (Key, error) {
	b := make([]byte, MinLength)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return Key{}, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return Key{material: b}, nil
}

// MustGenerate is like Generate but panics if the random source fails.
func MustGenerate() Key {
	k, err := Generate()
	if err != nil {
		panic(err)
	}
	return k
}

// FromBytes copies b into a new Key after checking its length.
func FromBytes(b []byte) (Key, error) {
	if len(b) < MinLength {
		return Key{}, fmt.Errorf("%w: got %d bytes", ErrTooShort, len(b))
	}
	material := make([]byte, len(b))
	copy(material, b)
	return Key{material: material}, nil
}

// Encode renders k in the canonical "base64:" form accepted by Parse.
// It is the only function that exposes key material as text.
func Encode(k Key) string {
	return base64Prefix + base64.StdEncoding.EncodeToString(k.material)
}

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	b := make([]byte, len(k.material))
	copy(b, k.material)
	return b
}

// Len returns the key length in bytes.
func (k Key) Len() int {
	return len(k.material)
}

// IsZero reports whether k holds no material.
func (k Key) IsZero() bool {
	return len(k.material) == 0
}

// Equal compares two keys in constant time.
func (k Key) Equal(other Key) bool {
	return subtle.ConstantTimeCompare(k.material, other.material) == 1
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler. It never emits key material.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(Redacted), nil
}

// MarshalJSON never emits key material.
func (k Key) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Redacted + `"`), nil
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return Redacted
}

// GoString implements fmt.GoStringer.
func (k Key) GoString() string {
	return "secretkey.Key(" + Redacted + ")"
}

// Format implements fmt.Formatter so that no verb (%x, %d, %v, ...) can print the material.
func (k Key) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = io.WriteString(f, k.GoString())
		return
	}
	_, _ = io.WriteString(f, Redacted)
}

// LogValue implements slog.LogValuer.
func (k Key) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}

// decodeHex validates before decoding so that error messages carry positions
// rather than characters of the rejected input.
func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex string must have an even length, got %d characters", len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, fmt.Errorf("invalid hex character at position %d", i)
		}
	}
	return hex.DecodeString(s)
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
