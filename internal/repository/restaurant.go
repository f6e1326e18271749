package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sat-food/sat/internal/model"
)

// Common errors for restaurant repository operations.
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantExists   = errors.New("restaurant already exists for user")
)

const restaurantColumns = `id, user_id, name, description, address, logo, phone, created_at`

// CreateRestaurant inserts a new restaurant profile.
func (r *Repository) CreateRestaurant(ctx context.Context, restaurant *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, user_id, name, description, address, logo, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		restaurant.ID,
		restaurant.UserID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Logo,
		restaurant.Phone,
		restaurant.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "restaurants_user_id_key") {
			return ErrRestaurantExists
		}
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// GetRestaurantByUserID retrieves the profile owned by a user.
func (r *Repository) GetRestaurantByUserID(ctx context.Context, userID string) (*model.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	restaurant, err := scanRestaurant(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by user ID: %w", err)
	}

	return restaurant, nil
}

// GetRestaurantsByIDs retrieves restaurants keyed by ID.
// Missing IDs are simply absent from the result.
func (r *Repository) GetRestaurantsByIDs(ctx context.Context, ids []string) (map[string]*model.Restaurant, error) {
	result := make(map[string]*model.Restaurant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurants by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		result[restaurant.ID] = restaurant
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return result, nil
}

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := row.Scan(
		&restaurant.ID,
		&restaurant.UserID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Address,
		&restaurant.Logo,
		&restaurant.Phone,
		&restaurant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}
