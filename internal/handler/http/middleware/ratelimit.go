package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var (
	rateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked by the IP rate limiter",
		},
		[]string{"result"},
	)
	rateLimitTrackedIPs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_tracked_ips",
			Help: "Number of client IPs currently tracked by the rate limiter",
		},
	)
)

// RateLimitConfig holds settings for the per-IP rate limiter.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained rate allowed per client IP.
	RequestsPerMinute int

	// Burst is the short-term burst allowance per client IP.
	Burst int

	// AuthRequestsPerMinute is the stricter rate applied to credential
	// endpoints (token issuance, signup) to slow brute forcing.
	AuthRequestsPerMinute int

	// AuthBurst is the burst allowance on credential endpoints.
	AuthBurst int

	// TTL is how long an idle IP entry is kept before cleanup.
	TTL time.Duration

	// Enabled controls whether limiting is active.
	Enabled bool
}

// DefaultRateLimitConfig returns the default limiter settings:
// 120 req/min with burst 30 in general, 10 req/min with burst 5 on
// credential endpoints, 10 minute idle TTL.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute:     120,
		Burst:                 30,
		AuthRequestsPerMinute: 10,
		AuthBurst:             5,
		TTL:                   10 * time.Minute,
		Enabled:               true,
	}
}

// LoadRateLimitConfig reads limiter settings from the environment,
// falling back to defaults on missing or invalid values:
//
//   - RATE_LIMIT_ENABLED ("false" disables)
//   - RATE_LIMIT_PER_MINUTE, RATE_LIMIT_BURST
//   - RATE_LIMIT_AUTH_PER_MINUTE, RATE_LIMIT_AUTH_BURST
func LoadRateLimitConfig(logger *slog.Logger) RateLimitConfig {
	cfg := DefaultRateLimitConfig()

	if os.Getenv("RATE_LIMIT_ENABLED") == "false" {
		cfg.Enabled = false
		return cfg
	}

	loadInt := func(key string, dst *int) {
		raw := os.Getenv(key)
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			if logger != nil {
				logger.Warn("invalid rate limit setting, using default",
					slog.String("key", key),
					slog.String("value", raw),
				)
			}
			return
		}
		*dst = v
	}

	loadInt("RATE_LIMIT_PER_MINUTE", &cfg.RequestsPerMinute)
	loadInt("RATE_LIMIT_BURST", &cfg.Burst)
	loadInt("RATE_LIMIT_AUTH_PER_MINUTE", &cfg.AuthRequestsPerMinute)
	loadInt("RATE_LIMIT_AUTH_BURST", &cfg.AuthBurst)
	return cfg
}

// visitor tracks the token buckets for a single client IP.
// Credential endpoints get their own, stricter bucket so a client
// cannot spend its general allowance on login attempts.
type visitor struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// IPRateLimiter enforces per-IP request rates using token buckets.
// Entries for idle IPs are dropped by a background cleanup loop so the
// map does not grow without bound.
type IPRateLimiter struct {
	config    RateLimitConfig
	extractor IPExtractor
	logger    *slog.Logger

	mu       sync.Mutex
	visitors map[string]*visitor
	stop     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter creates a per-IP rate limiter and starts its cleanup loop.
// Call Close when the limiter is no longer needed.
func NewIPRateLimiter(config RateLimitConfig, extractor IPExtractor, logger *slog.Logger) *IPRateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 120
	}
	if config.Burst <= 0 {
		config.Burst = config.RequestsPerMinute / 4
		if config.Burst < 1 {
			config.Burst = 1
		}
	}
	if config.AuthRequestsPerMinute <= 0 {
		config.AuthRequestsPerMinute = 10
	}
	if config.AuthBurst <= 0 {
		config.AuthBurst = 5
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	if extractor == nil {
		extractor = &RemoteAddrExtractor{}
	}

	rl := &IPRateLimiter{
		config:    config,
		extractor: extractor,
		logger:    logger,
		visitors:  make(map[string]*visitor),
		stop:      make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Close stops the background cleanup loop.
func (rl *IPRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.cleanup(time.Now())
		}
	}
}

func (rl *IPRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		v.mu.Lock()
		idle := now.Sub(v.lastSeen) > rl.config.TTL
		v.mu.Unlock()
		if idle {
			delete(rl.visitors, ip)
		}
	}
	rateLimitTrackedIPs.Set(float64(len(rl.visitors)))
}

func (rl *IPRateLimiter) visitorFor(ip string) *visitor {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[ip]
	if !ok {
		perSecond := rate.Limit(float64(rl.config.RequestsPerMinute) / 60.0)
		authPerSecond := rate.Limit(float64(rl.config.AuthRequestsPerMinute) / 60.0)
		v = &visitor{
			general: rate.NewLimiter(perSecond, rl.config.Burst),
			auth:    rate.NewLimiter(authPerSecond, rl.config.AuthBurst),
		}
		rl.visitors[ip] = v
		rateLimitTrackedIPs.Set(float64(len(rl.visitors)))
	}
	return v
}

// isAuthPath reports whether the path is a credential endpoint that gets
// the stricter bucket.
func isAuthPath(path string) bool {
	return path == "/auth/token" || path == "/auth/signup" ||
		strings.HasPrefix(path, "/auth/token/") || strings.HasPrefix(path, "/auth/signup/")
}

// Middleware returns a handler wrapper that rejects requests over the
// per-IP rate with 429 and a Retry-After header. IP extraction failures
// fail open: availability is preferred over strict limiting.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip, err := rl.extractor.ExtractIP(r)
			if err != nil {
				if rl.logger != nil {
					rl.logger.Error("rate limiter: failed to extract IP, allowing request",
						slog.String("error", err.Error()),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				rateLimitRequestsTotal.WithLabelValues("error").Inc()
				next.ServeHTTP(w, r)
				return
			}

			v := rl.visitorFor(ip)
			v.mu.Lock()
			v.lastSeen = time.Now()
			limiter := v.general
			if isAuthPath(r.URL.Path) {
				limiter = v.auth
			}
			allowed := limiter.Allow()
			v.mu.Unlock()

			if !allowed {
				rateLimitRequestsTotal.WithLabelValues("limited").Inc()
				if rl.logger != nil {
					rl.logger.Warn("rate limit exceeded",
						slog.String("ip", ip),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
					)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			rateLimitRequestsTotal.WithLabelValues("allowed").Inc()
			next.ServeHTTP(w, r)
		})
	}
}
