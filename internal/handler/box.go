package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/handler/dto"
	"github.com/sat-food/sat/internal/service"
)

// BoxHandler handles box endpoints.
type BoxHandler struct {
	svc    *service.BoxService
	logger *slog.Logger
}

// NewBoxHandler creates a new BoxHandler.
func NewBoxHandler(svc *service.BoxService, logger *slog.Logger) *BoxHandler {
	return &BoxHandler{svc: svc, logger: logger}
}

// Create handles POST /api/boxes.
func (h *BoxHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBoxRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	box, err := h.svc.Create(r.Context(), auth.UserFromContext(r.Context()), service.CreateBoxInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		PriceBefore: req.PriceBefore,
		PriceAfter:  req.PriceAfter,
		PickupTime:  req.PickupTime,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, box)
}

// List handles GET /api/boxes: the catalog of available boxes.
func (h *BoxHandler) List(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.svc.ListCatalog(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, boxes)
}

// ListOwn handles GET /api/boxes/my.
func (h *BoxHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	boxes, err := h.svc.ListOwn(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, boxes)
}

// SetAvailability handles PATCH /api/boxes/{id}/availability.
func (h *BoxHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Box ID is required")
		return
	}

	var req dto.SetAvailabilityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	box, err := h.svc.SetAvailability(r.Context(), auth.UserFromContext(r.Context()), id, *req.IsAvailable)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, box)
}
