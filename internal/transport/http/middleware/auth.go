package middleware

import (
	"net/http"
	"strings"

	"paymeet/internal/domain/auth"
	"paymeet/internal/transport/http/api"
)

// Auth requires a bearer token on /api routes when enabled. Login and health
// paths stay open so a client can obtain a token in the first place.
func Auth(secret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || !strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/api/auth/") {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				api.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if _, err := auth.VerifyToken(secret, strings.TrimSpace(token)); err != nil {
				api.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
