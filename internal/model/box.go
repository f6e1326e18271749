package model

import (
	"strings"
	"time"
)

// Category is a closed set of cuisine labels for boxes.
type Category string

// Category constants. Values are the canonical stored labels.
const (
	CategoryBakery    Category = "Выпечка"
	CategoryDesserts  Category = "Десерты"
	CategorySalads    Category = "Салаты"
	CategoryHotDishes Category = "Горячие блюда"
)

// ValidCategories contains all valid category values.
var ValidCategories = []Category{CategoryBakery, CategoryDesserts, CategorySalads, CategoryHotDishes}

// categorySlugs maps ASCII aliases accepted by the API to canonical labels.
var categorySlugs = map[string]Category{
	"bakery":     CategoryBakery,
	"desserts":   CategoryDesserts,
	"salads":     CategorySalads,
	"hot_dishes": CategoryHotDishes,
}

// ParseCategory resolves either a canonical label or an ASCII slug.
func ParseCategory(s string) (Category, bool) {
	for _, c := range ValidCategories {
		if string(c) == s {
			return c, true
		}
	}
	c, ok := categorySlugs[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Box is a surplus-food bundle offered by a restaurant.
type Box struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     Category  `json:"category"`
	Quantity     int       `json:"quantity"`
	PriceBefore  float64   `json:"price_before"`
	PriceAfter   float64   `json:"price_after"`
	PickupTime   string    `json:"pickup_time"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsOwnedBy reports whether the box belongs to the given restaurant.
func (b *Box) IsOwnedBy(restaurantID string) bool {
	return b.RestaurantID == restaurantID
}

// BoxWithRestaurant is a box joined with its restaurant's display fields.
type BoxWithRestaurant struct {
	Box
	RestaurantName    string `json:"restaurant_name"`
	RestaurantAddress string `json:"restaurant_address"`
}

// NewBoxWithRestaurant attaches restaurant fields to a box.
func NewBoxWithRestaurant(box *Box, r RestaurantSummary) BoxWithRestaurant {
	return BoxWithRestaurant{
		Box:               *box,
		RestaurantName:    r.Name,
		RestaurantAddress: r.Address,
	}
}
