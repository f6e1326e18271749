package service

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by a service for a caller-correctable
// failure wraps exactly one of these, so transports can map them with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)

// Service errors.
var (
	ErrInvalidToken       = fmt.Errorf("%w: could not validate credentials", ErrUnauthenticated)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

	ErrRestaurantOnly = fmt.Errorf("%w: only restaurants can access this resource", ErrForbidden)
	ErrCustomerOnly   = fmt.Errorf("%w: only customers can access this resource", ErrForbidden)
	ErrNotOwner       = fmt.Errorf("%w: box belongs to another restaurant", ErrForbidden)

	ErrRestaurantNotFound = fmt.Errorf("%w: restaurant profile not found", ErrNotFound)
	ErrBoxNotFound        = fmt.Errorf("%w: box not found", ErrNotFound)
	ErrFavoriteNotFound   = fmt.Errorf("%w: favorite not found", ErrNotFound)

	ErrEmailTaken       = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrRestaurantExists = fmt.Errorf("%w: restaurant profile already exists", ErrConflict)
	ErrAlreadyFavorited = fmt.Errorf("%w: box already in favorites", ErrConflict)

	ErrInvalidRole     = fmt.Errorf("%w: role must be customer or restaurant", ErrValidation)
	ErrInvalidCategory = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: prices must not be negative", ErrValidation)
	ErrMissingField    = fmt.Errorf("%w: required field is empty", ErrValidation)
)
