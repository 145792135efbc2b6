package payments

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/auth"
	"github.com/minbarapp/minbar/pkg/config"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the payment routes. All of them require an
// authenticated session.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) *Service {
	gateway := NewHTTPGateway(cfg.PaymentAPIBaseURL, cfg.PaymentAPIKey, &http.Client{Timeout: 30 * time.Second})
	paymentService := NewService(db, gateway)

	h := &handler{
		paymentService: paymentService,
	}

	payments := e.Group("/payments")
	payments.Use(authMiddleware.Authenticate)

	payments.POST("/intents", h.createIntent)
	payments.GET("/intents/:id", h.retrieveStatus)

	return paymentService
}
