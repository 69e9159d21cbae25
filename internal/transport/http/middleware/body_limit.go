package middleware

import (
	"net/http"
	"strings"
)

// BodyLimit caps request bodies on mutating methods. Multipart requests are
// capped at uploadMax instead of jsonMax so the JSON limit cannot choke a
// photo upload.
func BodyLimit(jsonMax, uploadMax int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				limit := jsonMax
				if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
					limit = uploadMax
				}
				if limit > 0 {
					r.Body = http.MaxBytesReader(w, r.Body, limit)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
