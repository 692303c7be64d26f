package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/league-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(requireAuth bool) config.Config {
	cfg := config.Defaults()
	cfg.JWTSecret = "test-secret-for-integration"
	cfg.BcryptCost = bcrypt.MinCost
	cfg.RequireAuth = requireAuth
	return cfg
}

func newTestServer(t *testing.T, requireAuth bool) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r, err := newRouter(db, testConfig(requireAuth))
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, mock
}

// TestAPI_LoginThenListTeams is an integration test: it builds the full router with a
// sqlmock-backed DB, logs in to get a token, then calls GET /api/teams with it.
func TestAPI_LoginThenListTeams(t *testing.T) {
	srv, mock := newTestServer(t, true)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	// Login: GetByUsername("integration")
	mock.ExpectQuery(`SELECT id, username, password_hash, email, role, created_at`).
		WithArgs("integration").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "role", "created_at"}).
			AddRow(1, "integration", string(hash), "i@example.com", "admin", time.Now()))

	// GET /api/teams
	mock.ExpectQuery(`SELECT t.id, t.name, t.city, t.coach_id, u.username`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "coach_id", "username"}).
			AddRow(1, "Lions", "Sarajevo", 1, "integration"))

	// 1) Login
	loginBody, _ := json.Marshal(map[string]string{"username": "integration", "password": "pw"})
	loginResp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(loginBody))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", loginResp.StatusCode)
	}
	var loginOut struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&loginOut); err != nil || loginOut.Token == "" {
		t.Fatalf("login response: %v", err)
	}
	if d := time.Until(loginOut.ExpiresAt); d < 59*time.Minute || d > 61*time.Minute {
		t.Errorf("expires_at %v is not about an hour away", loginOut.ExpiresAt)
	}

	// 2) GET /api/teams with Bearer token
	req, _ := http.NewRequest("GET", srv.URL+"/api/teams", nil)
	req.Header.Set("Authorization", "Bearer "+loginOut.Token)
	teamsResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("teams request: %v", err)
	}
	defer teamsResp.Body.Close()
	if teamsResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/teams status: got %d, want 200", teamsResp.StatusCode)
	}
	var teams []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		CoachName string `json:"coach_name"`
	}
	if err := json.NewDecoder(teamsResp.Body).Decode(&teams); err != nil {
		t.Fatalf("decode teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Lions" || teams[0].CoachName != "integration" {
		t.Errorf("unexpected teams: %+v", teams)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_RequireAuth(t *testing.T) {
	srv, _ := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/api/teams")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("GET /api/teams without token: got %d, want 401", resp.StatusCode)
	}
}

func TestAPI_InvalidTokenRejectedWhenOptional(t *testing.T) {
	srv, _ := newTestServer(t, false)

	req, _ := http.NewRequest("GET", srv.URL+"/api/teams", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", resp.StatusCode)
	}
}

func TestAPI_StaticRoutesBeatIDs(t *testing.T) {
	srv, mock := newTestServer(t, false)

	mock.ExpectQuery(`WHERE m.date_played > \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "home_team_id", "away_team_id", "date_played", "score_home", "score_away", "name", "name"}))

	resp, err := http.Get(srv.URL + "/api/matches/upcoming")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/matches/upcoming: got %d, want 200", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestAPI_Ready(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}

func TestAPI_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, false)

	if warm, err := http.Get(srv.URL + "/health"); err == nil {
		warm.Body.Close()
	}
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !bytes.Contains(buf.Bytes(), []byte("http_requests_total")) {
		t.Error("http_requests_total not exported")
	}
}

func TestNewRouter_EmptySecret(t *testing.T) {
	cfg := testConfig(false)
	cfg.JWTSecret = ""
	if _, err := newRouter(nil, cfg); err == nil {
		t.Error("expected error for empty secret")
	}
}
