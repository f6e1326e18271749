package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/migrations"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema applies every embedded down migration (newest first) followed by
// every up migration (oldest first).
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	downs, err := migrationFiles(".down.sql")
	if err != nil {
		return err
	}
	for i := len(downs) - 1; i >= 0; i-- {
		if err := execFile(ctx, pool, downs[i]); err != nil {
			return err
		}
	}

	ups, err := migrationFiles(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range ups {
		if err := execFile(ctx, pool, name); err != nil {
			return err
		}
	}

	return nil
}

func migrationFiles(suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func execFile(ctx context.Context, pool *pgxpool.Pool, name string) error {
	sql, err := fs.ReadFile(migrations.FS, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults. The password hash is
// a placeholder and will not verify.
func NewTestUser(t testing.TB, role model.Role) *model.User {
	t.Helper()
	id := UniqueID("user")
	return &model.User{
		ID:           id,
		Name:         "Test " + string(role),
		Email:        id + "@example.com",
		Role:         role,
		PasswordHash: "placeholder",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestRestaurant creates a test restaurant owned by userID.
func NewTestRestaurant(t testing.TB, userID string) *model.Restaurant {
	t.Helper()
	return &model.Restaurant{
		ID:          UniqueID("rest"),
		UserID:      userID,
		Name:        "Test Kitchen",
		Description: "Fresh every day",
		Address:     "1 Test Street",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestBox creates an available test box owned by restaurantID.
func NewTestBox(t testing.TB, restaurantID string) *model.Box {
	t.Helper()
	return &model.Box{
		ID:           UniqueID("box"),
		RestaurantID: restaurantID,
		Title:        "Surprise box",
		Description:  "Assorted pastries",
		Category:     model.CategoryBakery,
		Quantity:     3,
		PriceBefore:  3000,
		PriceAfter:   1000,
		PickupTime:   "18:00-20:00",
		IsAvailable:  true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

var idSeq atomic.Int64

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), idSeq.Add(1))
}
