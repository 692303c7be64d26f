package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
)

// maxTopScorersLimit caps ?limit= on the leaderboard.
const maxTopScorersLimit = 100

// StatisticHandler serves /api/statistics.
type StatisticHandler struct {
	Repo      *repo.StatisticRepo
	AuditRepo *repo.AuditRepo
}

type statisticInput struct {
	MatchID   int    `json:"match_id" validate:"required,min=1"`
	PlayerID  int    `json:"player_id" validate:"required,min=1"`
	EventType string `json:"event_type" validate:"required,max=50"`
	Minute    *int   `json:"minute" validate:"required,min=0"`
}

func (in statisticInput) model() models.Statistic {
	return models.Statistic{
		MatchID:   in.MatchID,
		PlayerID:  in.PlayerID,
		EventType: in.EventType,
		Minute:    *in.Minute,
	}
}

func (h *StatisticHandler) CreateStatistic(w http.ResponseWriter, r *http.Request) {
	var input statisticInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	s, err := h.Repo.Create(r.Context(), input.model())
	if err != nil {
		writeRepoError(w, r, "statistic", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "statistic", s.ID)
	writeJSON(w, http.StatusCreated, s)
}

func (h *StatisticHandler) ListStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatisticHandler) GetStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid statistic id", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, "statistic", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *StatisticHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := urlID(r, "matchId")
	if err != nil {
		JSONError(w, "invalid match id", http.StatusBadRequest)
		return
	}

	stats, err := h.Repo.ListByMatch(r.Context(), matchID)
	if err != nil {
		internalError(w, r, "list match statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatisticHandler) ListByPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlID(r, "playerId")
	if err != nil {
		JSONError(w, "invalid player id", http.StatusBadRequest)
		return
	}

	stats, err := h.Repo.ListByPlayer(r.Context(), playerID)
	if err != nil {
		internalError(w, r, "list player statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// TopScorers ranks players by goals. Query: limit (default 10, max 100).
func (h *StatisticHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	limit := repo.DefaultTopScorersLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = min(val, maxTopScorersLimit)
		}
	}

	scorers, err := h.Repo.TopScorers(r.Context(), limit)
	if err != nil {
		internalError(w, r, "top scorers", err)
		return
	}
	writeJSON(w, http.StatusOK, scorers)
}

func (h *StatisticHandler) UpdateStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid statistic id", http.StatusBadRequest)
		return
	}

	var input statisticInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	s, err := h.Repo.Update(r.Context(), id, input.model())
	if err != nil {
		writeRepoError(w, r, "statistic", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "update", "statistic", id)
	writeJSON(w, http.StatusOK, s)
}

func (h *StatisticHandler) DeleteStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid statistic id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDeleteError(w, r, "statistic", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "delete", "statistic", id)
	w.WriteHeader(http.StatusNoContent)
}
