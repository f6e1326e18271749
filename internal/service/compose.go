package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
)

// Composer joins boxes with their restaurants, and favorites with their boxes,
// for read paths. Dangling references never fail a read: a missing restaurant
// becomes model.UnknownRestaurant and a favorite whose box is gone is skipped.
type Composer struct {
	restaurants RestaurantStore
	boxes       BoxStore
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewComposer creates a new Composer.
func NewComposer(restaurants RestaurantStore, boxes BoxStore, opts Options) *Composer {
	opts = opts.withDefaults()
	return &Composer{
		restaurants: restaurants,
		boxes:       boxes,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
	}
}

// ComposeBoxes attaches restaurant name and address to each box, preserving order.
func (c *Composer) ComposeBoxes(ctx context.Context, boxes []*model.Box) ([]model.BoxWithRestaurant, error) {
	result := make([]model.BoxWithRestaurant, 0, len(boxes))
	if len(boxes) == 0 {
		return result, nil
	}

	restaurants, err := c.restaurants.GetRestaurantsByIDs(ctx, restaurantIDs(boxes))
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	for _, box := range boxes {
		result = append(result, model.NewBoxWithRestaurant(box, c.summary(restaurants, box)))
	}
	return result, nil
}

// ComposeFavorites expands favorites with their box and restaurant, preserving order.
func (c *Composer) ComposeFavorites(ctx context.Context, favs []*model.Favorite) ([]model.FavoriteWithBox, error) {
	result := make([]model.FavoriteWithBox, 0, len(favs))
	if len(favs) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.BoxID)
	}

	boxes, err := c.boxes.GetBoxesByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load boxes: %w", err)
	}

	found := make([]*model.Box, 0, len(boxes))
	for _, box := range boxes {
		found = append(found, box)
	}

	restaurants, err := c.restaurants.GetRestaurantsByIDs(ctx, restaurantIDs(found))
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}

	for _, f := range favs {
		box, ok := boxes[f.BoxID]
		if !ok {
			c.metrics.IncOrphanedReference("box")
			c.logger.Debug("favorite references missing box", "favorite_id", f.ID, "box_id", f.BoxID)
			continue
		}
		result = append(result, model.FavoriteWithBox{
			BoxWithRestaurant: model.NewBoxWithRestaurant(box, c.summary(restaurants, box)),
			FavoriteID:        f.ID,
			BoxID:             box.ID,
		})
	}
	return result, nil
}

func (c *Composer) summary(restaurants map[string]*model.Restaurant, box *model.Box) model.RestaurantSummary {
	r, ok := restaurants[box.RestaurantID]
	if !ok {
		c.metrics.IncOrphanedReference("restaurant")
		c.logger.Debug("box references missing restaurant", "box_id", box.ID, "restaurant_id", box.RestaurantID)
	}
	return r.Summary()
}

func restaurantIDs(boxes []*model.Box) []string {
	ids := make([]string, 0, len(boxes))
	for _, b := range boxes {
		ids = append(ids, b.RestaurantID)
	}
	return uniqueStrings(ids)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
