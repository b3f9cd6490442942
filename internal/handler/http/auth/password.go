package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"content-calendar/internal/handler/http/respond"
	"content-calendar/internal/repository"
)

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordHandler changes the authenticated account's password.
type PasswordHandler struct {
	Users  repository.UserRepository
	Policy *UserProvider
}

// ServeHTTP handles PUT /auth/password.
//
// @Summary      Change password
// @Description  Verifies the current password and replaces it with a new one.
// @Tags         auth
// @Accept       json
// @Success      204 "Password changed"
// @Failure      400 {string} string "Validation failed"
// @Failure      401 {string} string "Current password wrong"
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	if identity.UserID == 0 {
		// The bootstrap admin's password lives in the environment.
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("password cannot be changed for this account"))
		return
	}

	var req passwordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.Policy.CheckPasswordPolicy(req.NewPassword); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("account not found"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("current password is invalid"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := h.Users.UpdatePassword(r.Context(), user.ID, string(hash)); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("password changed", slog.Int64("user_id", user.ID))
	w.WriteHeader(http.StatusNoContent)
}
