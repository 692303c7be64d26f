package handlers

import (
	"net/http"

	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
)

// PlayerHandler serves /api/players.
type PlayerHandler struct {
	Repo      *repo.PlayerRepo
	Stats     *repo.StatisticRepo
	AuditRepo *repo.AuditRepo
}

type playerInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Position  string `json:"position" validate:"max=50"`
	TeamID    int    `json:"team_id" validate:"required,min=1"`
}

func (in playerInput) model() models.Player {
	return models.Player{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  in.Position,
		TeamID:    in.TeamID,
	}
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input playerInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	p, err := h.Repo.Create(r.Context(), input.model())
	if err != nil {
		writeRepoError(w, r, "player", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "player", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list players", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid player id", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, "player", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PlayerStats lists every recorded event of one player with match context.
func (h *PlayerHandler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid player id", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, r, "player", err)
		return
	}

	stats, err := h.Stats.ListByPlayer(r.Context(), id)
	if err != nil {
		internalError(w, r, "list player stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid player id", http.StatusBadRequest)
		return
	}

	var input playerInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	p, err := h.Repo.Update(r.Context(), id, input.model())
	if err != nil {
		writeRepoError(w, r, "player", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "update", "player", id)
	writeJSON(w, http.StatusOK, p)
}

func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid player id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDeleteError(w, r, "player", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "delete", "player", id)
	w.WriteHeader(http.StatusNoContent)
}
