// Package service provides business logic for the application.
package service

import (
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
)

// DefaultListLimit caps every list read.
const DefaultListLimit = 100

// Options holds dependencies shared by all services.
type Options struct {
	Metrics   metrics.Recorder
	Logger    *slog.Logger
	ListLimit int
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Metrics == nil {
		o.Metrics = metrics.NewNoop()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ListLimit <= 0 {
		o.ListLimit = DefaultListLimit
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Services bundles the application's use cases over a single Store.
type Services struct {
	Auth        *AuthService
	Restaurants *RestaurantService
	Boxes       *BoxService
	Favorites   *FavoriteService
	Composer    *Composer
}

// New wires every service over store.
func New(store Store, tokens *auth.TokenIssuer, opts Options) *Services {
	opts = opts.withDefaults()
	composer := NewComposer(store, store, opts)
	return &Services{
		Auth:        NewAuthService(store, tokens, opts),
		Restaurants: NewRestaurantService(store, opts),
		Boxes:       NewBoxService(store, store, composer, opts),
		Favorites:   NewFavoriteService(store, store, composer, opts),
		Composer:    composer,
	}
}

// newID returns a new lexicographically sortable identifier.
func newID() string {
	return ulid.Make().String()
}

// requireRole is the role gate every protected use case runs before touching storage.
func requireRole(caller *model.User, role model.Role) error {
	if caller == nil {
		return ErrInvalidToken
	}
	if auth.Authorize(caller, role) {
		return nil
	}
	if role == model.RoleRestaurant {
		return ErrRestaurantOnly
	}
	return ErrCustomerOnly
}
