package handlers

import (
	"net/http"
	"time"

	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
)

// MatchHandler serves /api/matches.
type MatchHandler struct {
	Repo      *repo.MatchRepo
	Stats     *repo.StatisticRepo
	AuditRepo *repo.AuditRepo

	// Now is used by Upcoming. Defaults to time.Now.
	Now func() time.Time
}

type matchInput struct {
	HomeTeamID int       `json:"home_team_id" validate:"required,min=1"`
	AwayTeamID int       `json:"away_team_id" validate:"required,min=1,nefield=HomeTeamID"`
	DatePlayed time.Time `json:"date_played" validate:"required"`
	ScoreHome  *int      `json:"score_home" validate:"omitempty,min=0"`
	ScoreAway  *int      `json:"score_away" validate:"omitempty,min=0"`
}

func (in matchInput) model() models.Match {
	return models.Match{
		HomeTeamID: in.HomeTeamID,
		AwayTeamID: in.AwayTeamID,
		DatePlayed: in.DatePlayed,
		ScoreHome:  in.ScoreHome,
		ScoreAway:  in.ScoreAway,
	}
}

// ==========================
// Create Match
// ==========================
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input matchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	m, err := h.Repo.Create(r.Context(), input.model())
	if err != nil {
		writeRepoError(w, r, "match", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "match", m.ID)
	writeJSON(w, http.StatusCreated, m)
}

// ==========================
// List Matches (newest first)
// ==========================
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list matches", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// ==========================
// Upcoming Matches
// ==========================
func (h *MatchHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	matches, err := h.Repo.Upcoming(r.Context(), now())
	if err != nil {
		internalError(w, r, "list upcoming matches", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// ==========================
// Matches For Team (home or away)
// ==========================
func (h *MatchHandler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlID(r, "teamId")
	if err != nil {
		JSONError(w, "invalid team id", http.StatusBadRequest)
		return
	}

	matches, err := h.Repo.ListByTeam(r.Context(), teamID)
	if err != nil {
		internalError(w, r, "list team matches", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// ==========================
// Get Match
// ==========================
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid match id", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, "match", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// ==========================
// Match Events
// ==========================
func (h *MatchHandler) MatchStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid match id", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, r, "match", err)
		return
	}

	stats, err := h.Stats.ListByMatch(r.Context(), id)
	if err != nil {
		internalError(w, r, "list match stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ==========================
// Update Match
// ==========================
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid match id", http.StatusBadRequest)
		return
	}

	var input matchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	m, err := h.Repo.Update(r.Context(), id, input.model())
	if err != nil {
		writeRepoError(w, r, "match", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "update", "match", id)
	writeJSON(w, http.StatusOK, m)
}

// ==========================
// Delete Match (its events go with it)
// ==========================
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid match id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDeleteError(w, r, "match", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "delete", "match", id)
	w.WriteHeader(http.StatusNoContent)
}
