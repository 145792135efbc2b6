package audio

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minbarapp/minbar/pkg/auth"
	"github.com/minbarapp/minbar/pkg/config"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the audio routes. Playback resolution is public;
// uploading and the upload listing are admin-only.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) *Service {
	audioService := NewService(db, cfg.UploadDir)

	h := &handler{
		audioService: audioService,
		prober:       NewProber(&http.Client{Timeout: cfg.ProbeTimeout + time.Second}),
		probeTimeout: cfg.ProbeTimeout,
	}

	audio := e.Group("/audio")
	audio.GET("/listen", h.listen)
	audio.GET("/sources", h.sources)

	audio.POST("/upload", h.upload, authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	audio.GET("/uploads", h.listUploads, authMiddleware.Authenticate, authMiddleware.RequireAdmin)

	// Serve the uploaded files themselves.
	e.Static(PublicUploadPrefix, cfg.UploadDir)

	return audioService
}
