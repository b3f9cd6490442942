package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"content-calendar/internal/handler/http/requestid"
	authservice "content-calendar/internal/service/auth"
)

// TokenTTL is how long issued JWTs stay valid.
const TokenTTL = time.Hour

type loginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// TokenHandler creates an HTTP handler that authenticates users and issues JWT tokens.
//
// @Summary      Issue JWT token
// @Description  Authenticates with email and password and returns a signed JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} tokenResponse "Signed JWT"
// @Failure      400 {string} string "Malformed request"
// @Failure      401 {string} string "Authentication failed"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      500 {string} string "Token generation failed"
// @Router       /auth/token [post]
func TokenHandler(authService *authservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		logger.Info("authentication attempt started")

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		identity, err := authService.Authenticate(r.Context(), authservice.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		signed, err := SignToken(identity, []byte(os.Getenv("JWT_SECRET")), TokenTTL)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest(identity.Role, "failure")
			RecordAuthDuration(identity.Role, time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", identity.Email),
			slog.String("role", identity.Role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		RecordAuthRequest(identity.Role, "success")
		RecordAuthDuration(identity.Role, time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response",
				slog.String("error", err.Error()))
		}
	}
}

// SignToken signs an HS256 JWT carrying the identity's email, user ID and role.
func SignToken(identity *authservice.Identity, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  identity.Email,
		"uid":  identity.UserID,
		"role": identity.Role,
		"exp":  time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}
