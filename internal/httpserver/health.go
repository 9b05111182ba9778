package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
)

func Health(c echo.Context) error {
	return respond.OK(c, echo.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root lists the API surface, mirroring what clients expect to probe.
func Root(c echo.Context) error {
	return respond.OK(c, echo.Map{
		"name":    "SPD Marketplace API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth":     "/api/auth",
			"users":    "/api/users",
			"products": "/api/products",
			"health":   "/health",
		},
	})
}
