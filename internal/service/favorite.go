package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/repository"
)

// FavoriteService manages customer favorites.
type FavoriteService struct {
	favorites FavoriteStore
	boxes     BoxStore
	composer  *Composer
	limit     int
	metrics   metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewFavoriteService creates a new FavoriteService. composer must not be nil.
func NewFavoriteService(favorites FavoriteStore, boxes BoxStore, composer *Composer, opts Options) *FavoriteService {
	opts = opts.withDefaults()
	return &FavoriteService{
		favorites: favorites,
		boxes:     boxes,
		composer:  composer,
		limit:     opts.ListLimit,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// Add bookmarks a box for the calling customer. The box must exist and the
// (customer, box) pair must not already be favorited.
func (s *FavoriteService) Add(ctx context.Context, caller *model.User, boxID string) (*model.Favorite, error) {
	if err := requireRole(caller, model.RoleCustomer); err != nil {
		return nil, err
	}

	if _, err := s.boxes.GetBoxByID(ctx, boxID); err != nil {
		if errors.Is(err, repository.ErrBoxNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("failed to get box: %w", err)
	}

	_, err := s.favorites.GetFavorite(ctx, caller.ID, boxID)
	switch {
	case err == nil:
		return nil, ErrAlreadyFavorited
	case !errors.Is(err, repository.ErrFavoriteNotFound):
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}

	fav := &model.Favorite{
		ID:        newID(),
		UserID:    caller.ID,
		BoxID:     boxID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.favorites.CreateFavorite(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrFavoriteExists) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	s.metrics.IncFavoriteAdded()
	s.logger.Debug("favorite added", "user_id", caller.ID, "box_id", boxID)

	return fav, nil
}

// Remove deletes the (customer, box) favorite pair.
func (s *FavoriteService) Remove(ctx context.Context, caller *model.User, boxID string) error {
	if err := requireRole(caller, model.RoleCustomer); err != nil {
		return err
	}

	if err := s.favorites.DeleteFavorite(ctx, caller.ID, boxID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	s.metrics.IncFavoriteRemoved()
	s.logger.Debug("favorite removed", "user_id", caller.ID, "box_id", boxID)

	return nil
}

// List returns the caller's favorites expanded with box and restaurant fields.
func (s *FavoriteService) List(ctx context.Context, caller *model.User) ([]model.FavoriteWithBox, error) {
	if err := requireRole(caller, model.RoleCustomer); err != nil {
		return nil, err
	}

	favs, err := s.favorites.ListFavoritesByUser(ctx, caller.ID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return s.composer.ComposeFavorites(ctx, favs)
}
