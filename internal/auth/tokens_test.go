package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/core"
)

func TestTokens(t *testing.T) {
	t.Parallel()

	t.Run("issued token verifies", func(t *testing.T) {
		t.Parallel()

		tokens := NewTokens("secret")

		token, err := tokens.Issue("user-a", "Alice", time.Hour)
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-a", claims.Subject)
		require.Equal(t, "Alice", claims.Name)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		token, err := NewTokens("secret").Issue("user-a", "Alice", time.Hour)
		require.NoError(t, err)

		_, err = NewTokens("other").Verify(token)
		require.ErrorIs(t, err, core.ErrUnauthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		tokens := NewTokens("secret")
		tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := tokens.Issue("user-a", "Alice", time.Hour)
		require.NoError(t, err)

		_, err = NewTokens("secret").Verify(token)
		require.ErrorIs(t, err, core.ErrUnauthenticated)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("token without subject", func(t *testing.T) {
		t.Parallel()

		tokens := NewTokens("secret")

		token, err := tokens.Issue("", "Nobody", time.Hour)
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, core.ErrUnauthenticated)
	})

	t.Run("other signing method", func(t *testing.T) {
		t.Parallel()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "user-a",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewTokens("secret").Verify(token)
		require.ErrorIs(t, err, core.ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		_, err := NewTokens("secret").Verify("not-a-token")
		require.ErrorIs(t, err, core.ErrUnauthenticated)
	})

	t.Run("init requires a secret", func(t *testing.T) {
		t.Parallel()

		tokens := &Tokens{Config: &config.Config{}}
		require.ErrorIs(t, tokens.Init(t.Context()), ErrNoSecret)

		tokens = &Tokens{Config: &config.Config{JWTSecret: "secret"}}
		require.NoError(t, tokens.Init(t.Context()))

		_, err := tokens.Issue("user-a", "Alice", time.Minute)
		require.NoError(t, err)
	})
}

func TestRequesterFromContext(t *testing.T) {
	t.Parallel()

	require.Empty(t, RequesterFromContext(t.Context()))
	require.Equal(t, "user-a", RequesterFromContext(WithRequester(t.Context(), "user-a")))
}
