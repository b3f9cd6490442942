package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/repository"
	authservice "content-calendar/internal/service/auth"
)

// DefaultMinPasswordLength is the minimum accepted password length.
const DefaultMinPasswordLength = 12

// DefaultWeakPasswords lists passwords (and prefixes) rejected outright.
var DefaultWeakPasswords = []string{
	"password",
	"12345678",
	"qwerty",
	"admin",
	"letmein",
	"changeme",
}

// UserProvider authenticates against the users table with bcrypt hashes.
// An optional bootstrap admin configured via ADMIN_EMAIL / ADMIN_PASSWORD
// environment variables is checked first so a fresh deployment can log in
// before any user rows exist.
type UserProvider struct {
	users             repository.UserRepository
	minPasswordLength int
	weakPasswords     []string
}

// NewUserProvider creates a database-backed auth provider.
func NewUserProvider(users repository.UserRepository) *UserProvider {
	return &UserProvider{
		users:             users,
		minPasswordLength: DefaultMinPasswordLength,
		weakPasswords:     DefaultWeakPasswords,
	}
}

// SetPasswordPolicy replaces the default password policy, typically from
// a security policy file. Zero or empty arguments keep the defaults.
func (p *UserProvider) SetPasswordPolicy(minLength int, weakPasswords []string) {
	if minLength > 0 {
		p.minPasswordLength = minLength
	}
	if len(weakPasswords) > 0 {
		p.weakPasswords = weakPasswords
	}
}

// CheckPasswordPolicy validates a candidate password against the policy.
// Used at signup and password change; login skips it so existing accounts
// keep working after a policy tightening.
func (p *UserProvider) CheckPasswordPolicy(password string) error {
	if len(password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}
	lower := strings.ToLower(password)
	for _, weak := range p.weakPasswords {
		if lower == weak || strings.HasPrefix(lower, weak) {
			return fmt.Errorf("password is too weak")
		}
	}
	return nil
}

// Authenticate validates credentials and returns the matching identity.
func (p *UserProvider) Authenticate(ctx context.Context, creds authservice.Credentials) (*authservice.Identity, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("credentials must not be empty")
	}

	if identity := p.checkBootstrapAdmin(creds); identity != nil {
		return identity, nil
	}

	user, err := p.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if user == nil {
		// Burn a bcrypt comparison so missing users cost the same as
		// wrong passwords.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
			[]byte(creds.Password))
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return &authservice.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Plan:   user.Plan,
	}, nil
}

// checkBootstrapAdmin matches credentials against ADMIN_EMAIL and
// ADMIN_PASSWORD using constant-time comparison. Returns nil when the
// bootstrap admin is not configured or does not match.
func (p *UserProvider) checkBootstrapAdmin(creds authservice.Credentials) *authservice.Identity {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPass == "" {
		return nil
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(adminEmail)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if !emailMatch || !passMatch {
		return nil
	}

	return &authservice.Identity{
		UserID: 0,
		Email:  adminEmail,
		Role:   entity.RoleAdmin,
		Plan:   "pro",
	}
}

// Requirements returns the password requirements.
func (p *UserProvider) Requirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *UserProvider) Name() string {
	return "user-db"
}
