package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/edupanel/enrollcore/internal/auth"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// AdminAuthMiddleware guards the admin action surface. The token carries the
// admin login; handlers can read it from the context for audit logging.
func AdminAuthMiddleware(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			login, err := tm.ParseToken(tokenStr)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, login)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
