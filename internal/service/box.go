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

// BoxService manages boxes and the public catalog.
type BoxService struct {
	boxes       BoxStore
	restaurants RestaurantStore
	composer    *Composer
	limit       int
	metrics     metrics.Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewBoxService creates a new BoxService.
func NewBoxService(boxes BoxStore, restaurants RestaurantStore, composer *Composer, opts Options) *BoxService {
	opts = opts.withDefaults()
	if composer == nil {
		composer = NewComposer(restaurants, boxes, opts)
	}
	return &BoxService{
		boxes:       boxes,
		restaurants: restaurants,
		composer:    composer,
		limit:       opts.ListLimit,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

// CreateBoxInput defines input for creating a box. There is no restaurant
// field: the owner is always the caller's own profile.
type CreateBoxInput struct {
	Title       string
	Description string
	Category    string
	Quantity    int
	PriceBefore float64
	PriceAfter  float64
	PickupTime  string
}

func (in CreateBoxInput) validate() (model.Category, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", ErrMissingField
	}
	category, ok := model.ParseCategory(in.Category)
	if !ok {
		return "", ErrInvalidCategory
	}
	if in.Quantity <= 0 {
		return "", ErrInvalidQuantity
	}
	if in.PriceBefore < 0 || in.PriceAfter < 0 {
		return "", ErrInvalidPrice
	}
	return category, nil
}

// Create adds a box to the caller's restaurant. New boxes are available.
func (s *BoxService) Create(ctx context.Context, caller *model.User, input CreateBoxInput) (*model.Box, error) {
	if err := requireRole(caller, model.RoleRestaurant); err != nil {
		return nil, err
	}

	category, err := input.validate()
	if err != nil {
		return nil, err
	}

	restaurant, err := ownRestaurant(ctx, s.restaurants, caller.ID)
	if err != nil {
		return nil, err
	}

	box := &model.Box{
		ID:           newID(),
		RestaurantID: restaurant.ID,
		Title:        input.Title,
		Description:  input.Description,
		Category:     category,
		Quantity:     input.Quantity,
		PriceBefore:  input.PriceBefore,
		PriceAfter:   input.PriceAfter,
		PickupTime:   input.PickupTime,
		IsAvailable:  true,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.boxes.CreateBox(ctx, box); err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}

	s.metrics.IncBoxCreated()
	s.logger.Info("box created", "box_id", box.ID, "restaurant_id", restaurant.ID)

	return box, nil
}

// ListCatalog returns available boxes with their restaurant's name and address.
// Any authenticated identity may read it.
func (s *BoxService) ListCatalog(ctx context.Context, caller *model.User) ([]model.BoxWithRestaurant, error) {
	if caller == nil {
		return nil, ErrInvalidToken
	}

	boxes, err := s.boxes.ListAvailableBoxes(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}

	result, err := s.composer.ComposeBoxes(ctx, boxes)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveCatalogSize(len(result))
	return result, nil
}

// ListOwn returns every box of the caller's restaurant regardless of availability.
func (s *BoxService) ListOwn(ctx context.Context, caller *model.User) ([]*model.Box, error) {
	if err := requireRole(caller, model.RoleRestaurant); err != nil {
		return nil, err
	}

	restaurant, err := ownRestaurant(ctx, s.restaurants, caller.ID)
	if err != nil {
		return nil, err
	}

	boxes, err := s.boxes.ListBoxesByRestaurant(ctx, restaurant.ID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}
	if boxes == nil {
		boxes = []*model.Box{}
	}
	return boxes, nil
}

// SetAvailability toggles whether a box appears in the catalog. Only the
// owning restaurant may change it.
func (s *BoxService) SetAvailability(ctx context.Context, caller *model.User, boxID string, available bool) (*model.Box, error) {
	if err := requireRole(caller, model.RoleRestaurant); err != nil {
		return nil, err
	}

	restaurant, err := ownRestaurant(ctx, s.restaurants, caller.ID)
	if err != nil {
		return nil, err
	}

	box, err := s.boxes.GetBoxByID(ctx, boxID)
	if err != nil {
		if errors.Is(err, repository.ErrBoxNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("failed to get box: %w", err)
	}

	if !box.IsOwnedBy(restaurant.ID) {
		return nil, ErrNotOwner
	}

	if box.IsAvailable == available {
		return box, nil
	}

	if err := s.boxes.SetBoxAvailability(ctx, box.ID, available); err != nil {
		if errors.Is(err, repository.ErrBoxNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("failed to update box: %w", err)
	}

	box.IsAvailable = available
	s.metrics.IncBoxAvailabilityChanged()
	s.logger.Info("box availability changed", "box_id", box.ID, "is_available", available)

	return box, nil
}
