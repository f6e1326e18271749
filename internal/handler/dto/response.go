package dto

import (
	"time"

	"github.com/sat-food/sat/internal/model"
)

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresAt   time.Time          `json:"expires_at"`
	User        model.UserResponse `json:"user"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the API root.
type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
