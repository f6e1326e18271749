// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// Role is the kind of principal behind an identity.
type Role string

// Role constants.
const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleCustomer, RoleRestaurant}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return slices.Contains(ValidRoles, r)
}

// User represents an identity that can authenticate.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole checks if the user has any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	return slices.Contains(roles, u.Role)
}

// UserResponse is the public projection of a user (no credential).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
