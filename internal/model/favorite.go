package model

import "time"

// Favorite is a customer's bookmark on a box. (UserID, BoxID) is unique.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BoxID     string    `json:"box_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteWithBox is a favorite expanded with its box and restaurant.
type FavoriteWithBox struct {
	BoxWithRestaurant
	FavoriteID string `json:"favorite_id"`
	BoxID      string `json:"box_id"`
}
