// Package auth holds the framework-agnostic authentication service.
// HTTP handlers and middleware delegate credential checks here so the
// logic stays testable without a running server.
package auth

import (
	"context"
	"strings"
)

// Credentials represents authentication credentials.
type Credentials struct {
	Email    string
	Password string
}

// Identity describes an authenticated account.
type Identity struct {
	UserID int64
	Email  string
	Role   string
	Plan   string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// Provider defines the interface for authentication providers.
type Provider interface {
	// Authenticate validates credentials and returns the matching identity.
	Authenticate(ctx context.Context, creds Credentials) (*Identity, error)

	// Requirements returns the credential requirements for this provider.
	Requirements() CredentialRequirements

	// Name returns the name of this provider.
	Name() string
}

// Service handles authentication business logic.
type Service struct {
	provider        Provider
	publicEndpoints []string
}

// NewService creates a new authentication service.
func NewService(provider Provider, publicEndpoints []string) *Service {
	return &Service{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// Authenticate validates credentials via the configured provider.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Identity, error) {
	return s.provider.Authenticate(ctx, creds)
}

// IsPublicEndpoint checks if a path is publicly accessible.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching (/swagger/ matches /swagger/index.html)
//   - Endpoints without '/' require an exact match, a trailing slash, or
//     query params only (/health matches /health?x=1 but not /health/detail)
func (s *Service) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}

// Provider returns the current authentication provider.
func (s *Service) Provider() Provider {
	return s.provider
}
