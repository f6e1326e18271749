package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/testutil"
)

var _ Store = (*testutil.MemStore)(nil)

type fixture struct {
	svc     *Services
	store   *testutil.MemStore
	metrics *metrics.InMemoryRecorder
	tokens  *auth.TokenIssuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := auth.NewTokenIssuer("service-test-secret", "HS256", 0)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	store := testutil.NewMemStore()
	rec := metrics.NewInMemory()
	svc := New(store, tokens, Options{
		Metrics: rec,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &fixture{svc: svc, store: store, metrics: rec, tokens: tokens}
}

func (f *fixture) register(t *testing.T, email string, role model.Role) *AuthResult {
	t.Helper()
	res, err := f.svc.Auth.Register(context.Background(), RegisterInput{
		Name:     "User " + email,
		Email:    email,
		Password: "pw",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return res
}

// vendor registers a restaurant identity with a profile.
func (f *fixture) vendor(t *testing.T, email, name string) (*model.User, *model.Restaurant) {
	t.Helper()
	user := f.register(t, email, model.RoleRestaurant).User
	r, err := f.svc.Restaurants.Create(context.Background(), user, CreateRestaurantInput{
		Name:        name,
		Description: "d",
		Address:     "addr " + name,
	})
	if err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return user, r
}

func (f *fixture) box(t *testing.T, owner *model.User, title string) *model.Box {
	t.Helper()
	box, err := f.svc.Boxes.Create(context.Background(), owner, CreateBoxInput{
		Title:       title,
		Category:    "bakery",
		Quantity:    2,
		PriceBefore: 3000,
		PriceAfter:  1000,
	})
	if err != nil {
		t.Fatalf("create box: %v", err)
	}
	return box
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestRequireRole(t *testing.T) {
	customer := &model.User{ID: "c", Role: model.RoleCustomer}
	restaurant := &model.User{ID: "r", Role: model.RoleRestaurant}

	tests := []struct {
		name    string
		caller  *model.User
		role    model.Role
		wantErr error
	}{
		{"nil_caller", nil, model.RoleCustomer, ErrInvalidToken},
		{"customer_ok", customer, model.RoleCustomer, nil},
		{"restaurant_ok", restaurant, model.RoleRestaurant, nil},
		{"customer_on_restaurant", customer, model.RoleRestaurant, ErrRestaurantOnly},
		{"restaurant_on_customer", restaurant, model.RoleCustomer, ErrCustomerOnly},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := requireRole(test.caller, test.role)
			if err != test.wantErr {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
