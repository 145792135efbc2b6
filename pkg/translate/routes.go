package translate

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the translation route. It is public.
func RegisterRoutes(e *echo.Echo) *Service {
	translateService := NewService()

	h := &handler{
		translateService: translateService,
	}

	e.POST("/translate", h.translate)

	return translateService
}
