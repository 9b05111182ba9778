package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/tokens"
)

// Verifier resolves a bearer token to an identity. Implemented by
// service.AuthService.
type Verifier interface {
	Verify(ctx context.Context, token string) (*tokens.Identity, error)
}

type Auth struct {
	Verifier Verifier
}

func NewAuth(v Verifier) *Auth {
	return &Auth{Verifier: v}
}

type identityKey struct{}

func IdentityFromContext(ctx context.Context) (*tokens.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*tokens.Identity)
	return id, ok
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The empty string means absent or malformed.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return ""
	}
	return strings.TrimSpace(token)
}

func (m *Auth) attach(c echo.Context, id *tokens.Identity) {
	c.Set("user_id", id.UserID)
	c.Set("email", id.Email)
	c.Set("name", id.Name)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), identityKey{}, id)))
}

// RequireAuth rejects requests without a valid bearer token. It never
// mutates token or user state: verification only, then forward or reject.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return respond.Fail(c, http.StatusUnauthorized, "missing bearer token")
		}

		id, err := m.Verifier.Verify(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				return respond.Fail(c, http.StatusUnauthorized, "token expired")
			}
			return respond.Fail(c, http.StatusUnauthorized, "invalid token")
		}

		m.attach(c, id)
		return next(c)
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// the request through unauthenticated otherwise. Public catalog routes use it.
func (m *Auth) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			if id, err := m.Verifier.Verify(c.Request().Context(), token); err == nil {
				m.attach(c, id)
			}
		}
		return next(c)
	}
}
