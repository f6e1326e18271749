package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/handler/dto"
	"github.com/sat-food/sat/internal/service"
)

// FavoriteHandler handles customer favorites.
type FavoriteHandler struct {
	svc    *service.FavoriteService
	logger *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{svc: svc, logger: logger}
}

// Add handles POST /api/favorites/{box_id}.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	boxID := chi.URLParam(r, "box_id")

	if _, err := h.svc.Add(r.Context(), auth.UserFromContext(r.Context()), boxID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Added to favorites"})
}

// Remove handles DELETE /api/favorites/{box_id}.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	boxID := chi.URLParam(r, "box_id")

	if err := h.svc.Remove(r.Context(), auth.UserFromContext(r.Context()), boxID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Removed from favorites"})
}

// List handles GET /api/favorites.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.svc.List(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, favs)
}
