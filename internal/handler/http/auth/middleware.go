package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"content-calendar/internal/handler/http/respond"
	authservice "content-calendar/internal/service/auth"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// IdentityFromContext retrieves the authenticated identity set by Authz.
// Returns nil on public endpoints and outside the middleware.
func IdentityFromContext(ctx context.Context) *authservice.Identity {
	if id, ok := ctx.Value(ctxIdentity).(*authservice.Identity); ok {
		return id
	}
	return nil
}

// WithIdentity adds an identity to the context. Exposed for handler tests.
func WithIdentity(ctx context.Context, id *authservice.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// Authz is an authorization middleware that requires JWT authentication
// for all HTTP methods on protected endpoints.
//
// Authorization logic:
//  1. Public endpoints (health checks, metrics, swagger, token, signup)
//     pass through without JWT validation.
//  2. Everything else requires a valid bearer token for ALL methods,
//     and the token's role must permit the method and path.
//
// The authenticated identity is placed in the request context for
// downstream handlers.
func Authz(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := validateJWT(r.Header.Get("Authorization"), secret)
		if err != nil {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}

		if !checkRolePermission(identity.Role, r.Method, r.URL.Path) {
			RecordForbiddenAttempt(identity.Role, r.Method)
			respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validateJWT(authz string, secret []byte) (*authservice.Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return nil, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("invalid role claim")
	}
	// JSON numbers decode as float64; the bootstrap admin carries uid 0.
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, errors.New("invalid uid claim")
	}

	return &authservice.Identity{
		UserID: int64(uid),
		Email:  sub,
		Role:   role,
	}, nil
}
