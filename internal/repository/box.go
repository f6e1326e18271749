package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sat-food/sat/internal/model"
)

// Common errors for box repository operations.
var (
	ErrBoxNotFound = errors.New("box not found")
)

const boxColumns = `id, restaurant_id, title, description, category, quantity, price_before, price_after, pickup_time, is_available, created_at`

// CreateBox inserts a new box.
func (r *Repository) CreateBox(ctx context.Context, box *model.Box) error {
	query := `
		INSERT INTO boxes (` + boxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		box.ID,
		box.RestaurantID,
		box.Title,
		box.Description,
		box.Category,
		box.Quantity,
		box.PriceBefore,
		box.PriceAfter,
		box.PickupTime,
		box.IsAvailable,
		box.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create box: %w", err)
	}

	return nil
}

// GetBoxByID retrieves a box by its ID.
func (r *Repository) GetBoxByID(ctx context.Context, id string) (*model.Box, error) {
	query := `SELECT ` + boxColumns + ` FROM boxes WHERE id = $1`

	box, err := scanBox(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("failed to get box by ID: %w", err)
	}

	return box, nil
}

// GetBoxesByIDs retrieves boxes keyed by ID. Missing IDs are absent.
func (r *Repository) GetBoxesByIDs(ctx context.Context, ids []string) (map[string]*model.Box, error) {
	result := make(map[string]*model.Box, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + boxColumns + ` FROM boxes WHERE id = ANY($1)`

	boxes, err := r.queryBoxes(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes by IDs: %w", err)
	}

	for _, box := range boxes {
		result[box.ID] = box
	}
	return result, nil
}

// ListAvailableBoxes returns up to limit boxes with is_available = true.
func (r *Repository) ListAvailableBoxes(ctx context.Context, limit int) ([]*model.Box, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM boxes
		WHERE is_available
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	boxes, err := r.queryBoxes(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list available boxes: %w", err)
	}
	return boxes, nil
}

// ListBoxesByRestaurant returns up to limit boxes owned by a restaurant,
// regardless of availability.
func (r *Repository) ListBoxesByRestaurant(ctx context.Context, restaurantID string, limit int) ([]*model.Box, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM boxes
		WHERE restaurant_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	boxes, err := r.queryBoxes(ctx, query, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes by restaurant: %w", err)
	}
	return boxes, nil
}

// SetBoxAvailability updates the availability flag of a box.
func (r *Repository) SetBoxAvailability(ctx context.Context, id string, available bool) error {
	query := `UPDATE boxes SET is_available = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, available)
	if err != nil {
		return fmt.Errorf("failed to set box availability: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBoxNotFound
	}

	return nil
}

func (r *Repository) queryBoxes(ctx context.Context, query string, args ...any) ([]*model.Box, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boxes := make([]*model.Box, 0)
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		boxes = append(boxes, box)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boxes: %w", err)
	}

	return boxes, nil
}

func scanBox(row pgx.Row) (*model.Box, error) {
	var box model.Box
	err := row.Scan(
		&box.ID,
		&box.RestaurantID,
		&box.Title,
		&box.Description,
		&box.Category,
		&box.Quantity,
		&box.PriceBefore,
		&box.PriceAfter,
		&box.PickupTime,
		&box.IsAvailable,
		&box.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &box, nil
}
