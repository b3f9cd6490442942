package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/handler/http/respond"
	"content-calendar/internal/repository"
)

type signupRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"your_password"`
}

type signupResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Plan  string `json:"plan"`
}

// SignupHandler creates member accounts. New accounts always start on the
// free plan with the member role.
type SignupHandler struct {
	Users  repository.UserRepository
	Policy *UserProvider
}

// ServeHTTP handles POST /auth/signup.
//
// @Summary      Create account
// @Description  Registers a new member account on the free plan.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body signupRequest true "Account details"
// @Success      201 {object} signupResponse "Created account"
// @Failure      400 {string} string "Validation failed"
// @Failure      409 {string} string "Email already registered"
// @Router       /auth/signup [post]
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := entity.ValidateEmail(req.Email); err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Policy.CheckPasswordPolicy(req.Password); err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	existing, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusConflict, errors.New("email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleMember,
		Plan:         "free",
	}
	if err := h.Users.Create(r.Context(), user); err != nil {
		RecordSignup("failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	RecordSignup("success")
	slog.Info("account created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))

	respond.JSON(w, http.StatusCreated, signupResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Plan:  user.Plan,
	})
}
