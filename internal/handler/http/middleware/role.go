package middleware

import (
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
)

// RequireRole rejects callers holding none of roles
func RequireRole(roles ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				response.HandleError(w, identity.ErrUnauthenticated)
				return
			}
			if !id.HasRole(roles...) {
				response.HandleError(w, identity.ErrInsufficientPermissions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(identity.RoleAdmin)(next)
}
