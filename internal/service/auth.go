package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/repository"
)

// dummyHash is verified against when the email is unknown so that a failed
// login costs the same whether or not the account exists.
var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("sat-login-timing-equalizer")
	if err != nil {
		return ""
	}
	return h
})

// AuthService registers identities, authenticates them and resolves bearer tokens.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, opts Options) *AuthService {
	opts = opts.withDefaults()
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		now:     opts.Now,
	}
}

// RegisterInput defines input for registering an identity.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *model.User
}

// Register creates an identity and issues its first token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(input.Name) == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingField
	}

	// Email match is exact; the unique index catches concurrent duplicates.
	_, err := s.users.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           newID(),
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered(string(user.Role))
	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail identically with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		_, _ = auth.VerifyPassword(password, dummyHash())
		s.metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash unreadable", "user_id", user.ID, "error", err)
	}
	if !ok {
		s.metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	s.metrics.IncLogin("success")
	return s.issue(user)
}

// Authenticate verifies a bearer token and resolves the identity behind it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.ResolveIdentity(ctx, userID)
}

// ResolveIdentity loads the identity a verified token refers to. A vanished
// identity is reported as ErrInvalidToken, the same as a bad token.
func (s *AuthService) ResolveIdentity(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   auth.TokenType,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// rehash upgrades a legacy credential after a successful login. Failure only logs.
func (s *AuthService) rehash(ctx context.Context, user *model.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	if err := s.users.UpdateUserPasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Warn("password rehash not stored", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
}
