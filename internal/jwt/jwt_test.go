package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testSecret, 24*time.Hour)

	t.Run("round-trips the subject", func(t *testing.T) {
		token, err := svc.GenerateToken("a@x.com", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Subject)
	})

	t.Run("IssueToken uses the configured lifetime", func(t *testing.T) {
		token, err := svc.IssueToken("a@x.com")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		expected := time.Now().Add(24 * time.Hour)
		assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("non-positive ttl falls back to fifteen minutes", func(t *testing.T) {
		token, err := svc.GenerateToken("a@x.com", 0)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		expected := time.Now().Add(fallbackTTL)
		assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
	})
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewJWTService(testSecret, 24*time.Hour)

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken("a@x.com", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewJWTService("another-secret", 24*time.Hour)
		token, err := other.GenerateToken("a@x.com", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformed)

		_, err = svc.ValidateToken("")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("missing subject claim", func(t *testing.T) {
		raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("missing expiry claim", func(t *testing.T) {
		raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
			Subject: "a@x.com",
		})
		token, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestDecodeUnverified(t *testing.T) {
	svc := NewJWTService(testSecret, 24*time.Hour)

	t.Run("decodes without checking the signature", func(t *testing.T) {
		other := NewJWTService("another-secret", 24*time.Hour)
		token, err := other.GenerateToken("b@x.com", time.Hour)
		require.NoError(t, err)

		claims, err := svc.DecodeUnverified(token)
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", claims.Subject)
	})

	t.Run("decodes an expired token", func(t *testing.T) {
		token, err := svc.GenerateToken("a@x.com", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		claims, err := svc.DecodeUnverified(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Subject)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.DecodeUnverified("garbage")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}
