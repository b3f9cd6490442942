package auth

import (
	"errors"
	"net/http"
	"time"

	"content-calendar/internal/handler/http/respond"
	"content-calendar/internal/repository"
)

type meResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Plan      string `json:"plan"`
	CreatedAt string `json:"created_at,omitempty"`
}

// MeHandler returns the authenticated account.
type MeHandler struct {
	Users repository.UserRepository
}

// ServeHTTP handles GET /auth/me.
//
// @Summary      Current account
// @Description  Returns the account behind the presented token.
// @Tags         auth
// @Produce      json
// @Success      200 {object} meResponse "Account"
// @Failure      401 {string} string "Not authenticated"
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	// The bootstrap admin has no user row.
	if identity.UserID == 0 {
		respond.JSON(w, http.StatusOK, meResponse{
			Email: identity.Email,
			Role:  identity.Role,
			Plan:  identity.Plan,
		})
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

	respond.JSON(w, http.StatusOK, meResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Plan:      user.Plan,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}
