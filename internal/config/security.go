package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents the security policy loaded from YAML.
// It covers password rules, the public endpoint list and JWT settings.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			Provider string `yaml:"provider"`
			Password struct {
				MinLength     int      `yaml:"min_length"`
				WeakPasswords []string `yaml:"weak_passwords"`
			} `yaml:"password"`
		} `yaml:"auth"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// LoadSecurityConfig loads the security policy from a YAML file.
// The path comes from a trusted source (CLI argument or hardcoded default),
// not from user input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by a trusted source
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read security config: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse security config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("security config validation failed: %w", err)
	}
	return &config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}
	if config.Security.Auth.Password.MinLength < 8 {
		return fmt.Errorf("password min_length must be at least 8")
	}
	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	return nil
}

// MinPasswordLength returns the minimum password length requirement.
func (c *SecurityConfig) MinPasswordLength() int {
	return c.Security.Auth.Password.MinLength
}

// WeakPasswords returns the rejected password prefixes.
func (c *SecurityConfig) WeakPasswords() []string {
	return c.Security.Auth.Password.WeakPasswords
}

// PublicEndpoints returns the endpoints reachable without a token.
func (c *SecurityConfig) PublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// weakJWTSecrets lists values that show up in tutorials and example
// configurations; a production server must never run with one of them.
var weakJWTSecrets = []string{
	"secret",
	"changeme",
	"password",
	"jwt-secret",
	"your-secret-key",
	"supersecret",
}

// ValidateJWTSecret checks that the signing secret is usable: at least
// 32 bytes and not a well-known placeholder.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is not set")
	}
	if len(secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters, got %d", len(secret))
	}
	lowered := strings.ToLower(secret)
	for _, weak := range weakJWTSecrets {
		if strings.Contains(lowered, weak) {
			return fmt.Errorf("JWT secret contains a well-known weak value")
		}
	}
	return nil
}
