package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/testutil"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.register(t, "c@x.com", model.RoleCustomer)

	if res.TokenType != "bearer" {
		t.Errorf("token type = %q, want bearer", res.TokenType)
	}
	if res.User.ID == "" || res.User.Role != model.RoleCustomer {
		t.Errorf("unexpected user: %+v", res.User)
	}
	if !strings.HasPrefix(res.User.PasswordHash, "$argon2id$") {
		t.Errorf("password should be stored as argon2id hash, got %q", res.User.PasswordHash)
	}
	if until := time.Until(res.ExpiresAt); until <= 29*time.Minute || until > 30*time.Minute {
		t.Errorf("token should expire in ~30m, got %v", until)
	}

	id, err := f.tokens.Verify(res.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id != res.User.ID {
		t.Errorf("token subject = %q, want %q", id, res.User.ID)
	}

	stored, err := f.store.GetUserByEmail(ctx, "c@x.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "pw" {
		t.Error("password stored in plaintext")
	}

	if got := f.metrics.Snapshot().UsersRegistered["customer"]; got != 1 {
		t.Errorf("registrations{customer} = %d, want 1", got)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.register(t, "dup@x.com", model.RoleCustomer)

	_, err := f.svc.Auth.Register(ctx, RegisterInput{Name: "Other", Email: "dup@x.com", Password: "other", Role: model.RoleRestaurant})
	if !errors.Is(err, ErrEmailTaken) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The first identity is untouched.
	user, err := f.svc.Auth.Authenticate(ctx, first.AccessToken)
	if err != nil {
		t.Fatalf("first token should remain valid: %v", err)
	}
	if user.Name != first.User.Name || user.Role != model.RoleCustomer {
		t.Errorf("first identity changed: %+v", user)
	}
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	f := newFixture(t)

	f.register(t, "case@x.com", model.RoleCustomer)
	f.register(t, "Case@x.com", model.RoleCustomer)

	users, _, _, _ := f.store.Counts()
	if users != 2 {
		t.Errorf("expected 2 users, got %d", users)
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"bad_role", RegisterInput{Name: "a", Email: "a@x.com", Password: "pw", Role: "admin"}, ErrInvalidRole},
		{"empty_role", RegisterInput{Name: "a", Email: "a@x.com", Password: "pw"}, ErrInvalidRole},
		{"blank_name", RegisterInput{Name: "  ", Email: "a@x.com", Password: "pw", Role: model.RoleCustomer}, ErrMissingField},
		{"empty_email", RegisterInput{Name: "a", Password: "pw", Role: model.RoleCustomer}, ErrMissingField},
		{"empty_password", RegisterInput{Name: "a", Email: "a@x.com", Role: model.RoleCustomer}, ErrMissingField},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := f.svc.Auth.Register(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "login@x.com", model.RoleRestaurant)

	res, err := f.svc.Auth.Login(ctx, "login@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.Email != "login@x.com" || res.AccessToken == "" {
		t.Errorf("unexpected result: %+v", res)
	}

	_, wrongPassword := f.svc.Auth.Login(ctx, "login@x.com", "nope")
	_, unknownEmail := f.svc.Auth.Login(ctx, "ghost@x.com", "pw")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPassword, unknownEmail)
	}

	snap := f.metrics.Snapshot()
	if snap.Logins["success"] != 1 || snap.Logins["failure"] != 2 {
		t.Errorf("unexpected login metrics: %v", snap.Logins)
	}
}

func TestLogin_LegacyBcryptHashIsUpgraded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	user := testutil.NewTestUser(t, model.RoleCustomer)
	user.PasswordHash = string(legacy)
	if err := f.store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := f.svc.Auth.Login(ctx, user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password on legacy hash: got %v", err)
	}

	if _, err := f.svc.Auth.Login(ctx, user.Email, "pw"); err != nil {
		t.Fatalf("Login with legacy hash: %v", err)
	}

	stored, _ := f.store.GetUserByID(ctx, user.ID)
	if !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatalf("hash not upgraded: %q", stored.PasswordHash)
	}

	if _, err := f.svc.Auth.Login(ctx, user.Email, "pw"); err != nil {
		t.Fatalf("Login after upgrade: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.register(t, "me@x.com", model.RoleCustomer)

	t.Run("valid", func(t *testing.T) {
		user, err := f.svc.Auth.Authenticate(ctx, res.AccessToken)
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.ID != res.User.ID {
			t.Errorf("got user %q, want %q", user.ID, res.User.ID)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := f.svc.Auth.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("foreign_secret", func(t *testing.T) {
		other, _ := auth.NewTokenIssuer("another-secret", "HS256", 0)
		token, _, _ := other.Issue(res.User.ID)
		if _, err := f.svc.Auth.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("vanished_identity", func(t *testing.T) {
		gone := f.register(t, "gone@x.com", model.RoleCustomer)
		f.store.DeleteUser(gone.User.ID)

		_, err := f.svc.Auth.Authenticate(ctx, gone.AccessToken)
		if !errors.Is(err, ErrInvalidToken) || !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestResolveIdentity_StorageFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection refused")
	f.store.FailWith(boom)

	_, err := f.svc.Auth.ResolveIdentity(context.Background(), "any")
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error to be wrapped, got %v", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatal("storage failure must not look like a bad token")
	}
}

func TestRegisterLoginMe_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg := f.register(t, "rt@x.com", model.RoleRestaurant)

	login, err := f.svc.Auth.Login(ctx, "rt@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	fromReg, err := f.svc.Auth.Authenticate(ctx, reg.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate(register token): %v", err)
	}
	fromLogin, err := f.svc.Auth.Authenticate(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate(login token): %v", err)
	}

	if fromReg.ToResponse() != fromLogin.ToResponse() {
		t.Errorf("identity differs:\n register: %+v\n login:    %+v", fromReg.ToResponse(), fromLogin.ToResponse())
	}
	if fromReg.ToResponse() != reg.User.ToResponse() {
		t.Errorf("me differs from register response")
	}
}
