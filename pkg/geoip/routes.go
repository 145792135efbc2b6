package geoip

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/config"
)

// RegisterRoutes registers the geolocation route. It is public.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *Service {
	geoService := NewService(cfg.GeoProviderBaseURL, &http.Client{Timeout: 5 * time.Second})

	h := &handler{
		geoService: geoService,
	}

	e.GET("/geo", h.locate)

	return geoService
}
