package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/tokens"
)

type fakeVerifier struct {
	identity *tokens.Identity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*tokens.Identity, error) {
	return f.identity, f.err
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return respond.OK(c, echo.Map{"user_id": c.Get("user_id")})
	})
	return rec, handler(c)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	auth := NewAuth(&fakeVerifier{identity: &tokens.Identity{UserID: "u-1", Email: "john@example.com"}})
	rec, err := doRequest(t, auth.RequireAuth, "Bearer sometoken")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var env respond.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestRequireAuth_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		err     error
		message string
	}{
		{name: "absent header", header: "", message: "missing bearer token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", message: "missing bearer token"},
		{name: "empty token", header: "Bearer ", message: "missing bearer token"},
		{name: "expired token", header: "Bearer old", err: tokens.ErrExpired, message: "token expired"},
		{name: "malformed token", header: "Bearer junk", err: tokens.ErrInvalid, message: "invalid token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := NewAuth(&fakeVerifier{err: tt.err})
			rec, err := doRequest(t, auth.RequireAuth, tt.header)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var env respond.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Nil(t, env.Data)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	t.Run("no header passes through", func(t *testing.T) {
		t.Parallel()

		auth := NewAuth(&fakeVerifier{err: tokens.ErrInvalid})
		rec, err := doRequest(t, auth.OptionalAuth, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid token passes through unauthenticated", func(t *testing.T) {
		t.Parallel()

		auth := NewAuth(&fakeVerifier{err: tokens.ErrInvalid})
		rec, err := doRequest(t, auth.OptionalAuth, "Bearer junk")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		t.Parallel()

		auth := NewAuth(&fakeVerifier{identity: &tokens.Identity{UserID: "u-1"}})
		rec, err := doRequest(t, auth.OptionalAuth, "Bearer sometoken")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)

		var env respond.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "u-1", data["user_id"])
	})
}
