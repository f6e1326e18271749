package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/repository"
)

// RestaurantService manages vendor profiles.
type RestaurantService struct {
	restaurants RestaurantStore
	metrics     metrics.Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurants RestaurantStore, opts Options) *RestaurantService {
	opts = opts.withDefaults()
	return &RestaurantService{
		restaurants: restaurants,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

// CreateRestaurantInput defines input for creating a vendor profile.
type CreateRestaurantInput struct {
	Name        string
	Description string
	Address     string
	Logo        *string
	Phone       *string
}

// Create creates the caller's vendor profile. A restaurant-role identity may
// own at most one profile.
func (s *RestaurantService) Create(ctx context.Context, caller *model.User, input CreateRestaurantInput) (*model.Restaurant, error) {
	if err := requireRole(caller, model.RoleRestaurant); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, ErrMissingField
	}

	_, err := s.restaurants.GetRestaurantByUserID(ctx, caller.ID)
	switch {
	case err == nil:
		return nil, ErrRestaurantExists
	case !errors.Is(err, repository.ErrRestaurantNotFound):
		return nil, fmt.Errorf("failed to check restaurant: %w", err)
	}

	restaurant := &model.Restaurant{
		ID:          newID(),
		UserID:      caller.ID,
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Logo:        input.Logo,
		Phone:       input.Phone,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.restaurants.CreateRestaurant(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrRestaurantExists) {
			return nil, ErrRestaurantExists
		}
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.metrics.IncRestaurantCreated()
	s.logger.Info("restaurant created", "restaurant_id", restaurant.ID, "user_id", caller.ID)

	return restaurant, nil
}

// GetOwn returns the caller's vendor profile.
func (s *RestaurantService) GetOwn(ctx context.Context, caller *model.User) (*model.Restaurant, error) {
	if err := requireRole(caller, model.RoleRestaurant); err != nil {
		return nil, err
	}
	return ownRestaurant(ctx, s.restaurants, caller.ID)
}

// ownRestaurant resolves a vendor profile by owner, translating absence to ErrRestaurantNotFound.
func ownRestaurant(ctx context.Context, restaurants RestaurantStore, userID string) (*model.Restaurant, error) {
	restaurant, err := restaurants.GetRestaurantByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}
