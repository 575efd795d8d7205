package sessions

import (
	"testing"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, std jwt.Claims, custom map[string]any) string {
	t.Helper()
	key := []byte("0123456789abcdef0123456789abcdef")
	sig, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: key}, nil)
	require.NoError(t, err)
	raw, err := jwt.Signed(sig).Claims(std).Claims(custom).CompactSerialize()
	require.NoError(t, err)
	return raw
}

func TestParseClaims(t *testing.T) {
	t.Parallel()

	t.Run("standard and custom claims", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		raw := signToken(t,
			jwt.Claims{Subject: "7", Expiry: jwt.NewNumericDate(expiry)},
			map[string]any{"email": "ada@example.com"})

		claims, ok := ParseClaims(raw)
		require.True(t, ok)
		assert.Equal(t, "7", claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.WithinDuration(t, expiry, claims.ExpiresAt, time.Second)
	})

	t.Run("numeric userId claim", func(t *testing.T) {
		raw := signToken(t, jwt.Claims{}, map[string]any{"userId": 42})

		claims, ok := ParseClaims(raw)
		require.True(t, ok)
		assert.Equal(t, "42", claims.UserID)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := ParseClaims("not-a-jwt")
		assert.False(t, ok)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := ParseClaims("")
		assert.False(t, ok)
	})
}
