package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crionaz/nutriplan/config"
	"github.com/crionaz/nutriplan/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user_id"
	RoleContextKey contextKey = "user_role"
)

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "dev-secret-change-me"))
}

// JWTAuth validates the Authorization bearer token and puts the user id and
// role in the request context.
func JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: No Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Unauthorized: Invalid Authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := util.ValidateJWT(parts[1], jwtSecret())
		if err != nil {
			http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleContextKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates a route group to users whose token carries the admin role.
// Must run after JWTAuth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleContextKey).(string)
		if role != "admin" {
			http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
