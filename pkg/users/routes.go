package users

import (
	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all user management routes. They are all
// admin-only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	users := e.Group("/users")
	users.Use(authMiddleware.Authenticate)
	users.Use(authMiddleware.RequireAdmin)

	users.GET("", h.list)
	users.GET("/:id", h.retrieve)
	users.POST("", h.create)
	users.DELETE("/:id", h.deactivate)

	return userService
}
