package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"solarserver/internal/services/auth"
)

type contextKey struct{}

var claimsKey contextKey

// Auth checks the bearer token on everything except the token endpoint,
// user registration and static artifact retrieval.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isOpen(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				unauthorized(w, "Not authenticated")
				return
			}

			claims, err := authService.ParseToken(strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// ClaimsFromContext returns the identity attached by the Auth middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func isOpen(r *http.Request) bool {
	if r.URL.Path == "/auth/token" {
		return true
	}
	if r.URL.Path == "/api/users" && r.Method == http.MethodPost {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/artifacts/")
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
