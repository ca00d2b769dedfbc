// Package rbac provides role checks layered on top of the auth middleware.
//
// Roles are carried in the JWT and placed into the request context by
// middleware.Auth; RequireRole gates route groups on them.
package rbac

import (
	"net/http"

	"github.com/hydroline/hydroline/pkg/middleware"
	"github.com/hydroline/hydroline/pkg/response"
)

// Roles known to the system.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// RequireRole allows the request through only when the authenticated user's
// role matches one of the given roles. Must be mounted after middleware.Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if _, ok := allowed[role]; !ok {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
