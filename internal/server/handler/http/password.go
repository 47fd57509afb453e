// Package http provides HTTP handlers for issuing passwords and reporting
// service status.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/passgen/internal/generator"
	"github.com/atinyakov/passgen/internal/models"
	"github.com/atinyakov/passgen/internal/service"
)

// PasswordService defines the operations required by PasswordHandler.
type PasswordService interface {
	// Generate issues the passwords described by the request.
	Generate(context.Context, models.GenerateRequest) (models.GenerateResponse, error)
	// Issued reports how many passwords have been issued.
	Issued(context.Context) (models.StatsResponse, error)
}

// PasswordHandler handles HTTP requests for password generation.
type PasswordHandler struct {
	// PasswordService performs the underlying generation.
	PasswordService PasswordService
	// Logger receives unexpected failures. Nil disables logging.
	Logger *zap.Logger
}

// Generate handles POST /api/generate.
// It expects a JSON models.GenerateRequest and answers with a
// models.GenerateResponse. Requests no password can satisfy get 422, a
// malformed body or count gets 400, and an exhausted uniqueness budget
// gets 503.
func (h *PasswordHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	resp, err := h.PasswordService.Generate(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCount):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case service.IsInvalidRequest(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, generator.ErrUniquenessTimeout):
		h.logger().Warn("uniqueness budget exhausted", zap.Error(err))
		http.Error(w, generator.ErrUniquenessTimeout.Error(), http.StatusServiceUnavailable)
		return
	default:
		h.logger().Error("failed to generate password", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp)
}

// Stats handles GET /api/stats.
func (h *PasswordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.PasswordService.Issued(r.Context())
	if err != nil {
		h.logger().Error("failed to count issued passwords", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (h *PasswordHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
