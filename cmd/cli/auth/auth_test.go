package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestLogin_SavesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["username"] != "alice" || in["password"] != "pw" {
			t.Fatalf("unexpected body: %v", in)
		}
		_, _ = w.Write([]byte(`{"token":"a.b.c","expires_at":"2030-01-01T00:00:00Z","user":{"username":"alice","role":"coach"}}`))
	}))
	defer srv.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("LEAGUE_API_URL", srv.URL)
	t.Setenv("LEAGUE_TOKEN_FILE", tokenFile)

	cmd := loginCmd()
	_ = cmd.Flags().Set("username", "alice")
	_ = cmd.Flags().Set("password", "pw")

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, nil)
	})
	if runErr != nil {
		t.Fatalf("login: %v", runErr)
	}
	if !strings.Contains(out, "Logged in as alice") {
		t.Errorf("unexpected output: %s", out)
	}
	data, err := os.ReadFile(tokenFile)
	if err != nil || string(data) != "a.b.c" {
		t.Errorf("token file: %q, %v", data, err)
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid username or password"}`))
	}))
	defer srv.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("LEAGUE_API_URL", srv.URL)
	t.Setenv("LEAGUE_TOKEN_FILE", tokenFile)

	cmd := loginCmd()
	_ = cmd.Flags().Set("username", "alice")
	_ = cmd.Flags().Set("password", "nope")

	err := cmd.RunE(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid username or password") {
		t.Fatalf("expected rejection, got %v", err)
	}
	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Error("token file must not be written on failure")
	}
}

func TestLogout(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("LEAGUE_TOKEN_FILE", tokenFile)
	_ = os.WriteFile(tokenFile, []byte("x"), 0o600)

	cmd := logoutCmd()
	out := captureOutput(t, func() { _ = cmd.RunE(cmd, nil) })
	if !strings.Contains(out, "Logged out") {
		t.Errorf("unexpected output: %s", out)
	}

	out = captureOutput(t, func() { _ = cmd.RunE(cmd, nil) })
	if !strings.Contains(out, "No user logged in") {
		t.Errorf("unexpected output: %s", out)
	}
}
