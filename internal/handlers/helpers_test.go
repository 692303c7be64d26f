package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/league-api/internal/auth"
	"github.com/crucial707/league-api/internal/token"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// fastHasher keeps bcrypt cheap in tests.
var fastHasher = auth.NewBcryptHasher(bcrypt.MinCost)

func mustHash(t *testing.T, plaintext string) string {
	t.Helper()
	h, err := fastHasher.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}
