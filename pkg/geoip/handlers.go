package geoip

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type handler struct {
	geoService *Service
}

// locate always responds 200 with a usable location. The frontend uses this
// to pick a default language; failing the request would only break that.
func (h *handler) locate(c echo.Context) error {
	loc := h.geoService.Lookup(c.Request().Context(), ClientIP(c.Request()))
	return c.JSON(http.StatusOK, loc)
}
