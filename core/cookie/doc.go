// Package cookie provides signed and encrypted HTTP cookies keyed by a
// secretkey.Key.
//
// Two independent 256-bit subkeys are derived from the master key with
// HKDF-SHA256: one for HMAC-SHA256 signatures and one for AES-256-GCM
// encryption. The cookie name is bound into both the signature and the
// additional authenticated data, so a value copied from one cookie to another
// is rejected.
//
// # Basic Usage
//
//	key := cfg.SecretKey()
//	manager, err := cookie.New(key, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	// Readable by the client, tamper-evident
//	err = manager.SetSigned(w, "prefs", "dark", cookie.WithMaxAge(3600))
//	value, err := manager.GetSigned(r, "prefs")
//
//	// Confidential and tamper-evident
//	err = manager.SetEncrypted(w, "session", payload)
//	payload, err := manager.GetEncrypted(r, "session")
//
//	manager.Delete(w, "session")
//
// # Defaults
//
// Cookies default to Path "/", HttpOnly and SameSite=Lax. A Set-Cookie header
// larger than MaxCookieSize is refused with ErrCookieTooLarge.
//
// # Errors
//
//   - ErrCookieNotFound: the request does not carry the cookie
//   - ErrInvalidFormat: the value is not in the expected encoding
//   - ErrInvalidSignature: the signature does not verify
//   - ErrDecryptionFailed: the ciphertext does not open
package cookie
