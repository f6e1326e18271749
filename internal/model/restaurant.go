package model

import "time"

// Restaurant is a vendor profile owned by exactly one restaurant-role user.
type Restaurant struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Logo        *string   `json:"logo"`
	Phone       *string   `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestaurantSummary holds the vendor fields attached to composed box reads.
type RestaurantSummary struct {
	Name    string
	Address string
}

// UnknownRestaurant is used when a box references a restaurant that no longer exists.
var UnknownRestaurant = RestaurantSummary{Name: "Unknown", Address: ""}

// Summary returns the composed-read projection of the restaurant.
// A nil restaurant yields UnknownRestaurant.
func (r *Restaurant) Summary() RestaurantSummary {
	if r == nil {
		return UnknownRestaurant
	}
	return RestaurantSummary{Name: r.Name, Address: r.Address}
}
