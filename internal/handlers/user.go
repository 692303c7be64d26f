package handlers

import (
	"net/http"

	"github.com/crucial707/league-api/internal/auth"
	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo      *repo.UserRepo
	Hasher    auth.PasswordHasher
	AuditRepo *repo.AuditRepo
}

// ==========================
// Create User (role defaults to "user")
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,max=100"`
		Password string `json:"password" validate:"required"`
		Email    string `json:"email" validate:"required,max=255"`
		Role     string `json:"role" validate:"omitempty,role"`
	}
	if !decodeAndValidate(w, r, &input) {
		return
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user, err := createUser(r.Context(), h.Repo, h.Hasher, input.Username, input.Password, input.Email, role)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "user", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ==========================
// Get User
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, "user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Update User (empty role or password keep the stored value)
// ==========================
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var input struct {
		Username string `json:"username" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,max=255"`
		Role     string `json:"role" validate:"omitempty,role"`
		Password string `json:"password"`
	}
	if !decodeAndValidate(w, r, &input) {
		return
	}

	var hash string
	if input.Password != "" {
		if hash, err = h.Hasher.Hash(input.Password); err != nil {
			writeUserError(w, r, err)
			return
		}
	}

	user, err := h.Repo.Update(r.Context(), id, input.Username, input.Email, input.Role, hash)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "update", "user", id)
	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Delete User
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDeleteError(w, r, "user", err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "delete", "user", id)
	w.WriteHeader(http.StatusNoContent)
}
