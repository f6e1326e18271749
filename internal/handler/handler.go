// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sat-food/sat/internal/handler/dto"
	"github.com/sat-food/sat/internal/service"
)

// Handler serves the unauthenticated API root and router fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root reports that the API is up.
// GET /api/
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{
		Message: "Sät API is running",
		Status:  "healthy",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeRequest decodes a JSON body into dst and validates it. On failure it
// writes the error response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is required")
		default:
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		}
		return false
	}

	fields, err := dto.Validate(dst)
	if err != nil || len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Request validation failed",
			Code:    "VALIDATION_ERROR",
			Details: fields,
		})
		return false
	}

	return true
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Could not validate credentials")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")

	case errors.Is(err, service.ErrRestaurantOnly):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only restaurants can access this endpoint")
	case errors.Is(err, service.ErrCustomerOnly):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only customers can access this endpoint")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Box belongs to another restaurant")

	case errors.Is(err, service.ErrRestaurantNotFound):
		writeError(w, http.StatusNotFound, "RESTAURANT_NOT_FOUND", "Restaurant profile not found")
	case errors.Is(err, service.ErrBoxNotFound):
		writeError(w, http.StatusNotFound, "BOX_NOT_FOUND", "Box not found")
	case errors.Is(err, service.ErrFavoriteNotFound):
		writeError(w, http.StatusNotFound, "FAVORITE_NOT_FOUND", "Favorite not found")

	// Uniqueness violations are reported as 400, as the web client expects.
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrRestaurantExists):
		writeError(w, http.StatusBadRequest, "PROFILE_EXISTS", "Restaurant profile already exists")
	case errors.Is(err, service.ErrAlreadyFavorited):
		writeError(w, http.StatusBadRequest, "ALREADY_FAVORITED", "Box already in favorites")

	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)

	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
