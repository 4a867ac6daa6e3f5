package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valoda-app/valoda-backend/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss": "valoda-api",
		"aud": "valoda-app",
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func newTestProcessor() *JWTProcessor {
	return NewJWTProcessor(config.JWT{
		Issuer:   "valoda-api",
		Audience: []string{"valoda-app"},
		Secret:   testSecret,
	})
}

func TestJWTProcessor_ParseAccessToken(t *testing.T) {
	proc := newTestProcessor()

	t.Run("valid token", func(t *testing.T) {
		userID, err := proc.ParseAccessToken(signToken(t, testSecret, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := proc.ParseAccessToken(signToken(t, "other-secret", validClaims()))
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()

		_, err := proc.ParseAccessToken(signToken(t, testSecret, claims))
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims["iss"] = "someone-else"

		_, err := proc.ParseAccessToken(signToken(t, testSecret, claims))
		require.ErrorContains(t, err, "invalid issuer")
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims["aud"] = "another-app"

		_, err := proc.ParseAccessToken(signToken(t, testSecret, claims))
		require.ErrorContains(t, err, "invalid audience")
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims()
		delete(claims, "sub")

		_, err := proc.ParseAccessToken(signToken(t, testSecret, claims))
		require.ErrorContains(t, err, "empty subject")
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := proc.ParseAccessToken("not.a.token")
		require.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	proc := newTestProcessor()
	mw := AuthMiddleware(proc, testLogger())

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("valid bearer token passes through", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/vocabulary", "", "")
		c.Request().Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims()))

		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", c.Get("userID"))
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/vocabulary", "", "")

		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodGet, "/vocabulary", "", "")
		c.Request().Header.Set("Authorization", "Bearer garbage")

		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
