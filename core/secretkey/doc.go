// Package secretkey decodes and holds the key material used to sign and encrypt
// session cookies.
//
// A key is accepted in one of these textual forms:
//
//	""  or "generate"      random 64-byte key from crypto/rand
//	"base64:<encoded>"     standard base64 (padded)
//	"hex:<encoded>"        hexadecimal, either case
//	"<encoded>"            base64 is tried first, then hex
//
// Whatever the form, the decoded material must be at least MinLength bytes;
// shorter keys are rejected with ErrTooShort.
//
//	key, err := secretkey.Parse(os.Getenv("APP__SECRET_KEY"))
//	if err != nil {
//		return err
//	}
//
// # Redaction
//
// Key never renders its material. fmt verbs, slog, encoding/json and
// encoding.TextMarshaler all produce the fixed placeholder "[REDACTED]",
// so a Key can be embedded in configuration structs that get logged.
// Use Bytes to obtain the raw material for cryptographic use.
//
// Key implements encoding.TextUnmarshaler, so env, YAML, TOML and JSON
// decoders can populate it directly from any of the forms above.
package secretkey
