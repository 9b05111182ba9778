package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", Root)
	e.GET("/health", Health)

	authMw := middleware.NewAuth(d.AuthHandler.Svc)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	users := api.Group("/users", authMw.RequireAuth)
	users.GET("/me", d.AuthHandler.Me)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts, authMw.OptionalAuth)
	products.GET("/search", d.ProductHandler.SearchProducts, authMw.OptionalAuth)
	products.GET("/:id", d.ProductHandler.GetProduct, authMw.OptionalAuth)

	products.POST("", d.ProductHandler.CreateProduct, authMw.RequireAuth)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, authMw.RequireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMw.RequireAuth)
}
