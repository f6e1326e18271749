package auth

import "github.com/sat-food/sat/internal/model"

// Authorize is the role gate: it reports whether user holds one of the
// accepted roles. An empty role list accepts any authenticated user.
func Authorize(user *model.User, roles ...model.Role) bool {
	if user == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	return user.HasRole(roles...)
}
