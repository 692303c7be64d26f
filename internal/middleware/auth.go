package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/league-api/internal/token"
)

type key string

const claimsKey key = "claims"

// Authenticate verifies "Authorization: Bearer <token>" with codec and stores
// the claims in the request context. A present but invalid token is always
// rejected with 401; a missing token is rejected only when required is true.
func Authenticate(codec *token.Codec, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					unauthorized(w, "missing authorization header")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(authHeader)
			if !ok {
				unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					unauthorized(w, "token expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// ClaimsFromContext returns the verified claims, if the request carried a token.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*token.Claims)
	return c, ok && c != nil
}

// GetUserID returns the authenticated user id, or nil for anonymous requests.
func GetUserID(ctx context.Context) *int {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	id := c.UserID
	return &id
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
