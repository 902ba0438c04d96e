// Package handlers holds the HTTP boundary: request decoding, shape
// validation and error-to-status mapping. Orchestration lives in
// internal/listing.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tezgah/internal/domain"
	"tezgah/internal/infra"
)

// ListingBuilder is the use-case boundary consumed by the handlers.
type ListingBuilder interface {
	Build(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error)
}

type App struct {
	Builder  ListingBuilder
	Logger   *infra.Logger
	validate *validator.Validate
}

func NewApp(builder ListingBuilder, logger *infra.Logger) *App {
	return &App{
		Builder:  builder,
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError maps classified errors to their status class. Anything
// unclassified is logged with detail and surfaced as an opaque 500 so no
// internal detail leaks to the caller.
func (a *App) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		a.Logger.Warn().
			Str("path", r.URL.Path).
			Int("status", appErr.Status).
			Str("reason", appErr.Message).
			Msg("request failed")
		a.json(w, appErr.Status, map[string]string{"error": appErr.Message})
		return
	}
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
	a.json(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
