package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/events"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/logging"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/service"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return respond.Fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return respond.Fail(c, http.StatusBadRequest, "invalid input",
				"name and email are required",
				"password must be at least 8 characters with a letter and a digit")
		case errors.Is(err, service.ErrUserAlreadyExists):
			return respond.Fail(c, http.StatusConflict, "email already registered")
		default:
			return err
		}
	}

	event := map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}
	if err := h.Producer.PublishEvent(ctx, "user_events", user.ID, event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	return respond.Created(c, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return respond.Fail(c, http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return respond.Fail(c, http.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	event := map[string]any{
		"type":  "user_logged_in",
		"email": req.Email,
	}
	if err := h.Producer.PublishEvent(ctx, "user_events", req.Email, event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	return respond.OK(c, res)
}

// Me returns the profile of the authenticated user.
func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get("user_id").(string)
	user, err := h.Svc.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	return respond.OK(c, user)
}
