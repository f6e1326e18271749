package middleware

import (
	"net/http"

	"github.com/sat-food/sat/internal/auth"
	"github.com/sat-food/sat/internal/model"
)

// RequireRole returns middleware that admits only users with one of the given
// roles. Must be applied after Auth.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.UserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Could not validate credentials")
				return
			}

			if !auth.Authorize(user, roles...) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", forbiddenMessage(roles))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRestaurant admits restaurant accounts only.
func RequireRestaurant() func(http.Handler) http.Handler {
	return RequireRole(model.RoleRestaurant)
}

// RequireCustomer admits customer accounts only.
func RequireCustomer() func(http.Handler) http.Handler {
	return RequireRole(model.RoleCustomer)
}

func forbiddenMessage(roles []model.Role) string {
	if len(roles) == 1 {
		switch roles[0] {
		case model.RoleRestaurant:
			return "Only restaurants can access this endpoint"
		case model.RoleCustomer:
			return "Only customers can access this endpoint"
		}
	}
	return "Insufficient permissions"
}
