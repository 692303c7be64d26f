package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/crucial707/league-api/internal/auth"
	"github.com/crucial707/league-api/internal/metrics"
	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service   *auth.Service
	Users     *repo.UserRepo
	Hasher    auth.PasswordHasher
	AuditRepo *repo.AuditRepo
}

// ==========================
// Login (username + password, returns user, token and expiry)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		metrics.IncLoginAttempt(metrics.LoginInvalid)
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			metrics.IncLoginAttempt(metrics.LoginInvalid)
			fields := make(map[string]string)
			if input.Username == "" {
				fields["username"] = "required"
			}
			if input.Password == "" {
				fields["password"] = "required"
			}
			JSONValidationError(w, err.Error(), fields, http.StatusBadRequest)
		case errors.Is(err, auth.ErrInvalidCredentials):
			metrics.IncLoginAttempt(metrics.LoginRejected)
			JSONError(w, err.Error(), http.StatusUnauthorized)
		default:
			// *auth.DependencyError: store or signing failure.
			metrics.IncLoginAttempt(metrics.LoginError)
			internalError(w, r, "login failed", err)
		}
		return
	}

	metrics.IncLoginAttempt(metrics.LoginSuccess)
	writeJSON(w, http.StatusOK, result)
}

// ==========================
// Register (self sign-up, role is always "user")
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,max=100"`
		Password string `json:"password" validate:"required"`
		Email    string `json:"email" validate:"required,max=255"`
	}
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := createUser(r.Context(), h.Users, h.Hasher, input.Username, input.Password, input.Email, models.RoleUser)
	if err != nil {
		writeUserError(w, r, err)
		return
	}

	recordAudit(r.Context(), h.AuditRepo, "create", "user", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// createUser hashes the password and stores the account.
func createUser(ctx context.Context, users *repo.UserRepo, hasher auth.PasswordHasher, username, password, email, role string) (*models.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return users.Create(ctx, username, hash, email, role)
}

func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, auth.ErrPasswordTooLong) {
		JSONValidationError(w, "validation failed", map[string]string{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		}, http.StatusBadRequest)
		return
	}
	if errors.Is(err, repo.ErrDuplicate) {
		JSONError(w, "username already exists", http.StatusConflict)
		return
	}
	writeRepoError(w, r, "user", err)
}
