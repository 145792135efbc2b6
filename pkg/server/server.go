package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minbarapp/minbar/pkg/audio"
	"github.com/minbarapp/minbar/pkg/auth"
	"github.com/minbarapp/minbar/pkg/binder"
	"github.com/minbarapp/minbar/pkg/config"
	"github.com/minbarapp/minbar/pkg/errcodes"
	"github.com/minbarapp/minbar/pkg/geoip"
	"github.com/minbarapp/minbar/pkg/metrics"
	"github.com/minbarapp/minbar/pkg/payments"
	"github.com/minbarapp/minbar/pkg/translate"
	"github.com/minbarapp/minbar/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	health.RegisterRoutes(e)
	metrics.RegisterRoutes(e)

	// Register auth routes and get the auth service
	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	// User management routes (admin-only)
	users.RegisterRoutes(e, db, authMiddleware)

	// Audio routes: playback resolution is public, uploads are admin-only
	audio.RegisterRoutes(e, db, cfg, authMiddleware)

	// Payment routes (authenticated)
	payments.RegisterRoutes(e, db, cfg, authMiddleware)

	// Public utility routes
	geoip.RegisterRoutes(e, cfg)
	translate.RegisterRoutes(e)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
