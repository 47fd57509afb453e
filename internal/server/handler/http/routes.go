package http

import (
	"net/http"

	"github.com/atinyakov/passgen/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the passgen API.
//
// Routes:
//
//	GET  /api/ping      → pingHandler.Ping
//	POST /api/generate  → passwordHandler.Generate
//	GET  /api/stats     → passwordHandler.Stats
//
// Middleware chain (applied in order): Recoverer, AllowContentType for
// JSON bodies, WithRequestLogging.
func NewRouter(
	passwordHandler *PasswordHandler,
	pingHandler *PingHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	// Only allow request bodies with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", pingHandler.Ping)
		r.Post("/generate", passwordHandler.Generate)
		r.Get("/stats", passwordHandler.Stats)
	})

	return r
}
