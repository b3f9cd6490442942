package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// Justification for each public endpoint:
// - /health, /ready, /live: orchestration health checks
// - /metrics: Prometheus scraping
// - /swagger/: API documentation
// - /auth/token: can't require a token to get a token
// - /auth/signup: account creation happens before authentication
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/auth/token",
	"/auth/signup",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching (/swagger/ matches /swagger/index.html)
//   - Endpoints without '/' require an exact match, a trailing slash, or
//     query params only (/health matches /health?x=1 but not /health/detail)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		// Prevents /health from matching /health/detail or /healthcheck.
		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
