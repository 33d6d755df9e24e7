package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipshelf/clipshelf/internal/api/handler"
	mw "github.com/clipshelf/clipshelf/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	linksHandler *handler.LinksHandler,
	resolveHandler *handler.ResolveHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	// Resolutions can block on the extraction helper, so the request
	// timeout is generous but bounded.
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(mw.NoCache)

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// Viewer
	r.Get("/", uiHandler.Index)

	// API consumed by the viewer
	r.Get("/links", linksHandler.Get)
	r.Post("/extract", linksHandler.Extract)
	r.Get("/resolve", resolveHandler.Get)

	return r
}
