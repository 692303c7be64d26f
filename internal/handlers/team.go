package handlers

import (
	"net/http"

	"github.com/crucial707/league-api/internal/repo"
)

type TeamHandler struct {
	Repo      *repo.TeamRepo
	Players   *repo.PlayerRepo
	AuditRepo *repo.AuditRepo
}

type teamInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	City    string `json:"city" validate:"max=100"`
	CoachID *int   `json:"coach_id" validate:"omitempty,min=1"`
}

//
// ==========================
// Create Team
// ==========================
//

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input teamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	team, err := h.Repo.Create(r.Context(), input.Name, input.City, input.CoachID)
	if err != nil {
		writeRepoError(w, r, "team", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "team", team.ID)
	writeJSON(w, http.StatusCreated, team)
}

//
// ==========================
// List Teams
// ==========================
//

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list teams", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

//
// ==========================
// Get Team By ID
// ==========================
//

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid team id", http.StatusBadRequest)
		return
	}

	team, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, "team", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

//
// ==========================
// Team Roster
// ==========================
//

func (h *TeamHandler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid team id", http.StatusBadRequest)
		return
	}

	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, r, "team", err)
		return
	}

	players, err := h.Players.ListByTeam(r.Context(), id)
	if err != nil {
		internalError(w, r, "list team players", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

//
// ==========================
// Update Team
// ==========================
//

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid team id", http.StatusBadRequest)
		return
	}

	var input teamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	team, err := h.Repo.UpdateByID(r.Context(), id, input.Name, input.City, input.CoachID)
	if err != nil {
		writeRepoError(w, r, "team", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "update", "team", id)
	writeJSON(w, http.StatusOK, team)
}

//
// ==========================
// Delete Team
// ==========================
//

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid team id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteByID(r.Context(), id); err != nil {
		writeDeleteError(w, r, "team", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "delete", "team", id)
	w.WriteHeader(http.StatusNoContent)
}
