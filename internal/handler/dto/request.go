// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// RegisterRequest represents the request body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
	Role     string `json:"role" validate:"required,oneof=customer restaurant"`
}

// LoginRequest represents the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// CreateRestaurantRequest represents the request body for POST /api/restaurants.
type CreateRestaurantRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Address     string  `json:"address" validate:"required,max=500"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,max=2048"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// CreateBoxRequest represents the request body for POST /api/boxes.
// Category accepts a canonical label or its ASCII slug; the service resolves it.
type CreateBoxRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Category    string  `json:"category" validate:"required,max=64"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	PriceBefore float64 `json:"price_before" validate:"gte=0"`
	PriceAfter  float64 `json:"price_after" validate:"gte=0"`
	PickupTime  string  `json:"pickup_time" validate:"max=100"`
}

// SetAvailabilityRequest represents the request body for
// PATCH /api/boxes/{id}/availability.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}
