package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/league-api/internal/token"
)

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec([]byte("middleware-secret"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func issue(t *testing.T, codec *token.Codec, ttl time.Duration) string {
	t.Helper()
	iss := token.NewIssuer(codec, ttl)
	raw, _, err := iss.Issue(token.Subject{UserID: 42, Username: "alice", Role: "coach"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return raw
}

// echoUser writes the user id found in the context, or "anonymous".
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id := GetUserID(r.Context())
	if id == nil {
		w.Write([]byte("anonymous"))
		return
	}
	json.NewEncoder(w).Encode(*id)
})

func TestAuthenticate_ValidToken(t *testing.T) {
	codec := testCodec(t)
	h := Authenticate(codec, true)(echoUser)

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, codec, time.Hour))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != "42\n" {
		t.Errorf("body: got %q", got)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	codec := testCodec(t)

	t.Run("optional", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Authenticate(codec, false)(echoUser).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK || rr.Body.String() != "anonymous" {
			t.Errorf("got %d %q", rr.Code, rr.Body.String())
		}
	})

	t.Run("required", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Authenticate(codec, true)(echoUser).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})
}

func TestAuthenticate_InvalidTokenRejectedEvenWhenOptional(t *testing.T) {
	codec := testCodec(t)
	other, _ := token.NewCodec([]byte("someone-else"))

	cases := map[string]string{
		"wrong scheme":   "Basic abc",
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not.a.token",
		"foreign secret": "Bearer " + issue(t, other, time.Hour),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)
			rr := httptest.NewRecorder()
			Authenticate(codec, false)(echoUser).ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	codec := testCodec(t)
	iss := token.NewIssuer(codec, time.Minute)
	iss.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := iss.Issue(token.Subject{UserID: 1, Username: "old", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rr := httptest.NewRecorder()
	Authenticate(codec, false)(echoUser).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rr.Code)
	}
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"] != "token expired" {
		t.Errorf("error: got %q", body["error"])
	}
}
