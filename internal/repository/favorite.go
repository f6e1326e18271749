package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sat-food/sat/internal/model"
)

// Common errors for favorite repository operations.
var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

const favoriteColumns = `id, user_id, box_id, created_at`

// CreateFavorite inserts a favorite. The (user_id, box_id) pair is unique.
func (r *Repository) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, box_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, fav.ID, fav.UserID, fav.BoxID, fav.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "favorites_user_box_key") {
			return ErrFavoriteExists
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	return nil
}

// GetFavorite retrieves a favorite by its (user, box) pair.
func (r *Repository) GetFavorite(ctx context.Context, userID, boxID string) (*model.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE user_id = $1 AND box_id = $2`

	var fav model.Favorite
	err := r.pool.QueryRow(ctx, query, userID, boxID).Scan(
		&fav.ID,
		&fav.UserID,
		&fav.BoxID,
		&fav.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return &fav, nil
}

// DeleteFavorite removes the favorite matching the exact (user, box) pair.
func (r *Repository) DeleteFavorite(ctx context.Context, userID, boxID string) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND box_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, boxID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ListFavoritesByUser returns up to limit favorites of a user, oldest first.
func (r *Repository) ListFavoritesByUser(ctx context.Context, userID string, limit int) ([]*model.Favorite, error) {
	query := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*model.Favorite, 0)
	for rows.Next() {
		var fav model.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.BoxID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, &fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}
