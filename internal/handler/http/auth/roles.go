package auth

import (
	"strings"

	"content-calendar/internal/domain/entity"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use.
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// "/*" matches all paths; "/contents/*" matches /contents and every subpath.
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
//
// Security model:
//   - Admin: full access to all endpoints and methods
//   - Member: full access to their own content, analytics, billing and
//     account endpoints; no access to anything else
//
// OPTIONS is allowed for both roles to support CORS preflight requests.
var RolePermissions = map[string]Permission{
	entity.RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	entity.RoleMember: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedPaths: []string{
			"/contents",
			"/contents/*",
			"/analytics",
			"/analytics/*",
			"/billing",
			"/billing/*",
			"/auth/me",
			"/auth/password",
			"/swagger/*",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or lacks permission.
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, allowedMethod := range perm.AllowedMethods {
		if allowedMethod == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
//
// Pattern rules:
//   - "/*" matches all paths
//   - "/contents/*" matches "/contents", "/contents/1", "/contents/1/x"
//   - "/contents" matches only "/contents" (exact)
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
