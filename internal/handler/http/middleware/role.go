package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

// RequirePermission checks if the actor's role has a specific permission.
// It must run after AuthRequired.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := user.ActorFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(actor.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
