package secretkey_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

func material(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestParse_Generate(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "generate", "GENERATE", "Generate", " generate "} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			key, err := secretkey.Parse(input)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, key.Len(), secretkey.MinLength)
		})
	}

	t.Run("generated keys differ", func(t *testing.T) {
		a, err := secretkey.Parse("generate")
		require.NoError(t, err)
		b, err := secretkey.Parse("generate")
		require.NoError(t, err)
		assert.False(t, a.Equal(b))
	})
}

func TestParse_Base64(t *testing.T) {
	t.Parallel()

	t.Run("prefixed", func(t *testing.T) {
		raw := material(64)
		key, err := secretkey.Parse("base64:" + base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("longer than minimum keeps every byte", func(t *testing.T) {
		raw := material(100)
		key, err := secretkey.Parse("base64:" + base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, 100, key.Len())
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := secretkey.Parse("base64:!!not-base64!!")
		require.Error(t, err)
		assert.ErrorIs(t, err, secretkey.ErrInvalidBase64)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := secretkey.Parse("base64:" + base64.StdEncoding.EncodeToString(material(32)))
		assert.ErrorIs(t, err, secretkey.ErrTooShort)
	})
}

func TestParse_Hex(t *testing.T) {
	t.Parallel()

	t.Run("lower case", func(t *testing.T) {
		raw := material(64)
		key, err := secretkey.Parse("hex:" + hex.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("upper case", func(t *testing.T) {
		raw := material(64)
		key, err := secretkey.Parse("hex:" + strings.ToUpper(hex.EncodeToString(raw)))
		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("odd length", func(t *testing.T) {
		_, err := secretkey.Parse("hex:abc")
		assert.ErrorIs(t, err, secretkey.ErrInvalidHex)
	})

	t.Run("invalid digit", func(t *testing.T) {
		_, err := secretkey.Parse("hex:" + strings.Repeat("zz", 64))
		require.ErrorIs(t, err, secretkey.ErrInvalidHex)
		assert.NotContains(t, err.Error(), "zz")
	})

	t.Run("too short", func(t *testing.T) {
		_, err := secretkey.Parse("hex:" + hex.EncodeToString(material(63)))
		assert.ErrorIs(t, err, secretkey.ErrTooShort)
	})
}

func TestParse_SameBytesAcrossEncodings(t *testing.T) {
	t.Parallel()

	raw := material(96)
	fromHex, err := secretkey.Parse("hex:" + strings.ToUpper(hex.EncodeToString(raw)))
	require.NoError(t, err)
	fromBase64, err := secretkey.Parse("base64:" + base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	assert.True(t, fromHex.Equal(fromBase64))
	assert.Equal(t, fromHex.Bytes(), fromBase64.Bytes())
}

func TestParse_Unprefixed(t *testing.T) {
	t.Parallel()

	t.Run("base64 is tried first", func(t *testing.T) {
		raw := material(64)
		key, err := secretkey.Parse(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("hex when not valid base64", func(t *testing.T) {
		// 130 hex characters is not a multiple of four, so base64 rejects it.
		raw := material(65)
		key, err := secretkey.Parse(hex.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, key.Bytes())
	})

	t.Run("neither encoding", func(t *testing.T) {
		_, err := secretkey.Parse("this is not a key!")
		assert.ErrorIs(t, err, secretkey.ErrUnrecognizedEncoding)
	})

	t.Run("short base64 is not retried as hex", func(t *testing.T) {
		_, err := secretkey.Parse(base64.StdEncoding.EncodeToString(material(16)))
		assert.ErrorIs(t, err, secretkey.ErrTooShort)
	})
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("copies input", func(t *testing.T) {
		raw := material(64)
		key, err := secretkey.FromBytes(raw)
		require.NoError(t, err)

		raw[0] ^= 0xff
		assert.NotEqual(t, raw, key.Bytes())
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := secretkey.FromBytes(material(10))
		assert.ErrorIs(t, err, secretkey.ErrTooShort)
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	key := secretkey.MustGenerate()
	parsed, err := secretkey.Parse(secretkey.Encode(key))
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))
}

func TestKey_Redaction(t *testing.T) {
	t.Parallel()

	raw := material(64)
	key, err := secretkey.FromBytes(raw)
	require.NoError(t, err)

	hexMaterial := hex.EncodeToString(raw)
	b64Material := base64.StdEncoding.EncodeToString(raw)

	rendered := []string{
		key.String(),
		fmt.Sprint(key),
		fmt.Sprintf("%v %+v %#v %s %x %X %d %q", key, key, key, key, key, key, key, key),
		fmt.Sprintf("%v", struct{ Key secretkey.Key }{key}),
	}

	text, err := key.MarshalText()
	require.NoError(t, err)
	rendered = append(rendered, string(text))

	js, err := json.Marshal(map[string]any{"key": key})
	require.NoError(t, err)
	rendered = append(rendered, string(js))

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("config", "key", key)
	rendered = append(rendered, buf.String())

	for _, out := range rendered {
		assert.Contains(t, out, secretkey.Redacted)
		assert.NotContains(t, out, hexMaterial)
		assert.NotContains(t, out, b64Material)
	}
}

func TestKey_UnmarshalText(t *testing.T) {
	t.Parallel()

	raw := material(64)
	var key secretkey.Key
	require.NoError(t, key.UnmarshalText([]byte("hex:"+hex.EncodeToString(raw))))
	assert.Equal(t, raw, key.Bytes())

	var short secretkey.Key
	err := short.UnmarshalText([]byte("hex:abcd"))
	assert.ErrorIs(t, err, secretkey.ErrTooShort)
	assert.True(t, short.IsZero())
}
