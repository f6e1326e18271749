package service

import (
	"context"

	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/repository"
)

// UserStore persists identities and their credentials.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserPasswordHash(ctx context.Context, id, passwordHash string) error
}

// RestaurantStore persists vendor profiles.
type RestaurantStore interface {
	CreateRestaurant(ctx context.Context, restaurant *model.Restaurant) error
	GetRestaurantByUserID(ctx context.Context, userID string) (*model.Restaurant, error)
	GetRestaurantsByIDs(ctx context.Context, ids []string) (map[string]*model.Restaurant, error)
}

// BoxStore persists boxes.
type BoxStore interface {
	CreateBox(ctx context.Context, box *model.Box) error
	GetBoxByID(ctx context.Context, id string) (*model.Box, error)
	GetBoxesByIDs(ctx context.Context, ids []string) (map[string]*model.Box, error)
	ListAvailableBoxes(ctx context.Context, limit int) ([]*model.Box, error)
	ListBoxesByRestaurant(ctx context.Context, restaurantID string, limit int) ([]*model.Box, error)
	SetBoxAvailability(ctx context.Context, id string, available bool) error
}

// FavoriteStore persists customer favorites.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, fav *model.Favorite) error
	GetFavorite(ctx context.Context, userID, boxID string) (*model.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, boxID string) error
	ListFavoritesByUser(ctx context.Context, userID string, limit int) ([]*model.Favorite, error)
}

// Store is the full persistence surface used by the services.
// Store implementations report missing rows and uniqueness violations with the
// repository package's sentinel errors.
type Store interface {
	UserStore
	RestaurantStore
	BoxStore
	FavoriteStore
}

var _ Store = (*repository.Repository)(nil)
