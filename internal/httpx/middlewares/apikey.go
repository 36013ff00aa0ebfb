package middlewares

import (
	"crypto/subtle"
	"net/http"
)

// Header names shared between the storefront and this service.
const (
	HeaderXAPIKey         = "x-api-key"
	HeaderXIdempotencyKey = "x-idempotency-key"
)

// RequireAPIKey gates the ingestion boundary with the shared secret.
// Comparison is constant-time so the key cannot be probed byte by byte.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderXAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
