package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-0123",
		TokenExpiration: expiration,
		Issuer:          "openbooks-test",
	})
}

func TestJWTService(t *testing.T) {
	userID := uuid.New()

	t.Run("generate then validate round-trips claims", func(t *testing.T) {
		svc := newTestService(time.Hour)

		token, expiresAt, err := svc.Generate(userID, "alice")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "openbooks-test", claims.Issuer)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		svc := newTestService(-time.Minute)

		token, _, err := svc.Generate(userID, "alice")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		svc := newTestService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-secret-value",
			TokenExpiration: time.Hour,
			Issuer:          "openbooks-test",
		})

		token, _, err := other.Generate(userID, "alice")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token without user id", func(t *testing.T) {
		svc := newTestService(time.Hour)

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-that-is-long-enough-0123"))
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}
