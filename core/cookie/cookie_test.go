package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochronus/hello-inertia/core/cookie"
	"github.com/ochronus/hello-inertia/core/secretkey"
)

func newManager(t *testing.T, opts ...cookie.Option) (*cookie.Manager, secretkey.Key) {
	t.Helper()
	key := secretkey.MustGenerate()
	m, err := cookie.New(key, opts...)
	require.NoError(t, err)
	return m, key
}

// roundTrip copies the Set-Cookie headers of w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		m, _ := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "test", "value123"))

		value, err := m.Get(roundTrip(w), "test")
		require.NoError(t, err)
		assert.Equal(t, "value123", value)
	})

	t.Run("missing cookie", func(t *testing.T) {
		m, _ := newManager(t)
		_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "nope")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		m, _ := newManager(t)
		w := httptest.NewRecorder()
		m.Delete(w, "test")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("zero key is rejected", func(t *testing.T) {
		_, err := cookie.New(secretkey.Key{})
		assert.ErrorIs(t, err, cookie.ErrNoKey)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t)

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "signed", "hello world"))

		value, err := m.GetSigned(roundTrip(w), "signed")
		require.NoError(t, err)
		assert.Equal(t, "hello world", value)
	})

	t.Run("tampered value", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "signed", "user-1"))
		original := w.Result().Cookies()[0].Value

		_, sig, _ := strings.Cut(original, "|")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "signed", Value: "dXNlci0y|" + sig})

		_, err := m.GetSigned(r, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("value moved to another cookie name", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "a", "payload"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "b", Value: w.Result().Cookies()[0].Value})

		_, err := m.GetSigned(r, "b")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, v := range []string{"no-separator", "!!!|abc", "abc|!!!"} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "signed", Value: v})
			_, err := m.GetSigned(r, "signed")
			assert.ErrorIs(t, err, cookie.ErrInvalidFormat, v)
		}
	})

	t.Run("other key rejects", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "signed", "x"))

		other, _ := newManager(t)
		_, err := other.GetSigned(roundTrip(w), "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}

func TestManager_EncryptedCookies(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t)

	t.Run("round trip hides plaintext", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "private", "secret-identity"))
		assert.NotContains(t, w.Header().Get("Set-Cookie"), "secret-identity")

		value, err := m.GetEncrypted(roundTrip(w), "private")
		require.NoError(t, err)
		assert.Equal(t, "secret-identity", value)
	})

	t.Run("fresh nonce per write", func(t *testing.T) {
		w1, w2 := httptest.NewRecorder(), httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w1, "private", "same"))
		require.NoError(t, m.SetEncrypted(w2, "private", "same"))
		assert.NotEqual(t, w1.Result().Cookies()[0].Value, w2.Result().Cookies()[0].Value)
	})

	t.Run("name is authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "a", "payload"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "b", Value: w.Result().Cookies()[0].Value})
		_, err := m.GetEncrypted(r, "b")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("truncated or garbage", func(t *testing.T) {
		for _, v := range []string{"!!!", "YWJj"} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "private", Value: v})
			_, err := m.GetEncrypted(r, "private")
			assert.ErrorIs(t, err, cookie.ErrInvalidFormat, v)
		}
	})

	t.Run("signed key cannot decrypt", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetEncrypted(w, "private", "payload"))

		other, _ := newManager(t)
		_, err := other.GetEncrypted(roundTrip(w), "private")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})
}

func TestManager_SizeLimit(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t)

	w := httptest.NewRecorder()
	err := m.Set(w, "big", strings.Repeat("x", cookie.MaxCookieSize))

	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
	assert.Equal(t, cookie.MaxCookieSize, tooLarge.Max)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestManager_Options(t *testing.T) {
	t.Parallel()

	t.Run("secure defaults", func(t *testing.T) {
		m, _ := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "c", "v"))

		c := w.Result().Cookies()[0]
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Zero(t, c.MaxAge)
	})

	t.Run("manager defaults and per-cookie overrides", func(t *testing.T) {
		m, _ := newManager(t,
			cookie.WithSecure(true),
			cookie.WithDomain("example.com"),
			cookie.WithSameSite(http.SameSiteStrictMode),
		)
		assert.True(t, m.Defaults().Secure)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "c", "v", cookie.WithMaxAge(60), cookie.WithPath("/app"), cookie.WithHTTPOnly(false)))

		c := w.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, "example.com", c.Domain)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, 60, c.MaxAge)
		assert.False(t, c.Expires.IsZero())
		assert.Equal(t, "/app", c.Path)
		assert.False(t, c.HttpOnly)

		w = httptest.NewRecorder()
		require.NoError(t, m.Set(w, "c", "v"))
		assert.Equal(t, "/", w.Result().Cookies()[0].Path, "per-cookie options must not leak into defaults")
	})
}
