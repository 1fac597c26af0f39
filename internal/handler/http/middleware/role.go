package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/clockwork-hq/timeclock-backend-go/internal/handler/http/response"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/jwt"
)

// RequireOwner requires owner role
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Owner access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(jwt.RoleOwner) {
			response.Forbidden(w, "Owner access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or owner role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Manager access required")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Manager access required")
			return
		}

		role := jwt.Role(roleStr)
		if role != jwt.RoleManager && role != jwt.RoleOwner {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
