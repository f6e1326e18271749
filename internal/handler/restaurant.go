package handler

import (
	"log/slog"
	"net/http"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/handler/dto"
	"github.com/sat-food/sat/internal/service"
)

// RestaurantHandler handles vendor profile endpoints.
type RestaurantHandler struct {
	svc    *service.RestaurantService
	logger *slog.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(svc *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{svc: svc, logger: logger}
}

// Create handles POST /api/restaurants.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRestaurantRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	restaurant, err := h.svc.Create(r.Context(), auth.UserFromContext(r.Context()), service.CreateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Logo:        req.Logo,
		Phone:       req.Phone,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, restaurant)
}

// GetOwn handles GET /api/restaurants/me.
func (h *RestaurantHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.svc.GetOwn(r.Context(), auth.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, restaurant)
}
