package players

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/league-api/internal/models"
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

func TestListPlayers_ByTeam(t *testing.T) {
	team := "Lions"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/teams/3/players" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]models.Player{
			{ID: 9, FirstName: "Edin", LastName: "Dzeko", Position: "FW", TeamID: 3, TeamName: &team},
		})
	}))
	defer srv.Close()

	t.Setenv("LEAGUE_API_URL", srv.URL)
	t.Setenv("LEAGUE_TOKEN_FILE", filepath.Join(t.TempDir(), "none"))

	cmd := listPlayersCmd()
	_ = cmd.Flags().Set("team", "3")

	out := captureOutput(t, func() {
		if err := cmd.RunE(cmd, nil); err != nil {
			t.Errorf("run: %v", err)
		}
	})

	if !strings.Contains(out, "Edin Dzeko") || !strings.Contains(out, "Lions") {
		t.Fatalf("expected player in output, got: %s", out)
	}
}
