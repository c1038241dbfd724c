package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token and puts
// the caller on the request context as a user.Actor.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		actor, err := user.ActorFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.WithActor(r.Context(), actor)))
	}
	return http.HandlerFunc(hfn)
}
