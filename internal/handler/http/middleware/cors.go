// Package middleware provides HTTP middleware shared by the API server:
// CORS handling, client IP extraction and per-IP rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://app.example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	AllowedHeaders []string

	// AllowCredentials must be true for JWT Bearer token authentication.
	AllowCredentials bool

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int

	Logger *slog.Logger
}

// LoadCORSConfig loads CORS configuration from environment variables.
//
//   - CORS_ALLOWED_ORIGINS: comma-separated origin whitelist (required)
//   - CORS_ALLOWED_METHODS: comma-separated methods (default GET,POST,PUT,DELETE,OPTIONS)
//   - CORS_ALLOWED_HEADERS: comma-separated headers (default Content-Type,Authorization,X-Request-ID)
//   - CORS_MAX_AGE: preflight cache seconds (default 86400)
//
// An empty whitelist is a configuration error: the server should either
// serve same-origin only (do not install the middleware) or name its
// origins explicitly. Wildcards are rejected because the API uses
// credentialed requests.
func LoadCORSConfig() (*CORSConfig, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS is not set")
	}

	var origins []string
	for _, o := range strings.Split(originsStr, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			return nil, fmt.Errorf("wildcard origin is not allowed with credentials")
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid origin %q: must include scheme", o)
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS contains no valid origins")
	}

	cfg := &CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	if methods := splitEnvList("CORS_ALLOWED_METHODS"); len(methods) > 0 {
		cfg.AllowedMethods = methods
	}
	if headers := splitEnvList("CORS_ALLOWED_HEADERS"); len(headers) > 0 {
		cfg.AllowedHeaders = headers
	}
	if maxAgeStr := os.Getenv("CORS_MAX_AGE"); maxAgeStr != "" {
		maxAge, err := strconv.Atoi(maxAgeStr)
		if err != nil || maxAge < 0 {
			return nil, fmt.Errorf("invalid CORS_MAX_AGE %q", maxAgeStr)
		}
		cfg.MaxAge = maxAge
	}

	return cfg, nil
}

func splitEnvList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *CORSConfig) isAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORS returns middleware that handles cross-origin requests against the
// configured origin whitelist.
//
// Behavior:
//   - No Origin header: same-origin request, skip CORS processing.
//   - Origin not in the whitelist: continue without CORS headers; the
//     browser blocks the response.
//   - Allowed origin, OPTIONS: respond 204 with preflight headers, do not
//     call the next handler.
//   - Allowed origin, other methods: set CORS headers and pass through.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.isAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo back the request origin; required for credentialed requests.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
