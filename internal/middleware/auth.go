package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/metrics"
	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/service"
)

// Authenticator verifies a bearer token and resolves the identity behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger        *slog.Logger
	Authenticator Authenticator
	Metrics       metrics.Recorder
}

// Auth returns a middleware that authenticates requests with a bearer token
// and injects the resolved user into the request context.
//
// Every rejection gets the same 401 body so callers cannot tell a bad token
// from one whose identity was deleted.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := extractBearerToken(r)
			if token == "" {
				rejectAuth(cfg, w, r, reason)
				return
			}

			user, err := cfg.Authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					rejectAuth(cfg, w, r, "invalid_token")
					return
				}
				cfg.Logger.Error("identity lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			setLoggedUser(r.Context(), user.ID)

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively. When no token is found the
// second value names the reason.
func extractBearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "missing_token"
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "malformed_header"
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", "missing_token"
	}
	return token, ""
}

func rejectAuth(cfg AuthConfig, w http.ResponseWriter, r *http.Request, reason string) {
	cfg.Metrics.IncAuthRejected(reason)
	cfg.Logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Could not validate credentials")
}
