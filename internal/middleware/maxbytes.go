package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps JSON request bodies (64 KiB is plenty for league records).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes limits the request body size; oversized bodies fail to decode and
// the handler answers 400. Non-positive maxBytes uses DefaultMaxBodyBytes.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Method != http.MethodGet {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
