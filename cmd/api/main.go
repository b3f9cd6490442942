package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appconfig "content-calendar/internal/config"
	pgRepo "content-calendar/internal/infra/adapter/persistence/postgres"
	"content-calendar/internal/infra/db"
	"content-calendar/internal/observability/logging"
	obsmetrics "content-calendar/internal/observability/metrics"
	"content-calendar/internal/observability/tracing"
	"content-calendar/internal/repository"

	analyticsUC "content-calendar/internal/usecase/analytics"
	billingUC "content-calendar/internal/usecase/billing"
	contentUC "content-calendar/internal/usecase/content"

	hhttp "content-calendar/internal/handler/http"
	hanalytics "content-calendar/internal/handler/http/analytics"
	hauth "content-calendar/internal/handler/http/auth"
	hbilling "content-calendar/internal/handler/http/billing"
	hcontent "content-calendar/internal/handler/http/content"
	"content-calendar/internal/handler/http/middleware"
	"content-calendar/internal/handler/http/requestid"
	"content-calendar/internal/handler/http/respond"
	authservice "content-calendar/internal/service/auth"

	_ "content-calendar/docs" // swagger docs
)

// @title           Content Calendar API
// @version         1.0
// @description     REST API for scheduling content across social, email and blog channels.
// @description     Provides calendar views, bulk scheduling, analytics and plan management.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Use the form "Bearer {token}".

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := appconfig.LoadServerConfig()
	if err != nil {
		logger.Error("invalid server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if err := appconfig.ValidateJWTSecret(os.Getenv("JWT_SECRET")); err != nil {
		logger.Error("JWT secret rejected", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing, err := tracing.Setup("content-calendar-api")
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler, rateLimiter := setupServer(logger, database, cfg)
	defer rateLimiter.Close()

	runServer(logger, handler, database, cfg)
}

// initDatabase opens the connection pool and applies pending migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupServer wires repositories, services, routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *appconfig.ServerConfig) (http.Handler, *middleware.IPRateLimiter) {
	contentRepo := pgRepo.NewContentRepo(database)
	userRepo := pgRepo.NewUserRepo(database)

	catalog, err := billingUC.LoadCatalog()
	if err != nil {
		logger.Error("failed to load plan catalog", slog.Any("error", err))
		os.Exit(1)
	}
	billingSvc := &billingUC.Service{Users: userRepo, Catalog: catalog}
	contentSvc := &contentUC.Service{Repo: contentRepo, Quota: billingSvc}
	analyticsSvc := &analyticsUC.Service{Repo: contentRepo}

	authProvider := hauth.NewUserProvider(userRepo)
	publicEndpoints := hauth.PublicEndpoints
	if path := os.Getenv("SECURITY_CONFIG_PATH"); path != "" {
		secCfg, err := appconfig.LoadSecurityConfig(path)
		if err != nil {
			logger.Error("failed to load security configuration", slog.Any("error", err))
			os.Exit(1)
		}
		authProvider.SetPasswordPolicy(secCfg.MinPasswordLength(), secCfg.WeakPasswords())
		if eps := secCfg.PublicEndpoints(); len(eps) > 0 {
			publicEndpoints = eps
		}
		logger.Info("security policy loaded", slog.String("path", path))
	}
	authService := authservice.NewService(authProvider, publicEndpoints)

	mux := setupRoutes(routeDeps{
		DB:           database,
		Config:       cfg,
		ContentSvc:   contentSvc,
		AnalyticsSvc: analyticsSvc,
		BillingSvc:   billingSvc,
		Users:        userRepo,
		AuthProvider: authProvider,
		AuthService:  authService,
	})

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	ipExtractor := middleware.NewIPExtractor(proxyConfig)
	if proxyConfig.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies", len(proxyConfig.AllowedCIDRs)))
	}

	rateLimitCfg := middleware.LoadRateLimitConfig(logger)
	rateLimiter := middleware.NewIPRateLimiter(rateLimitCfg, ipExtractor, logger)
	if !rateLimitCfg.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	return applyMiddleware(logger, mux, rateLimiter, cfg), rateLimiter
}

// routeDeps bundles everything route registration needs.
type routeDeps struct {
	DB           *sql.DB
	Config       *appconfig.ServerConfig
	ContentSvc   *contentUC.Service
	AnalyticsSvc *analyticsUC.Service
	BillingSvc   *billingUC.Service
	Users        repository.UserRepository
	AuthProvider *hauth.UserProvider
	AuthService  *authservice.Service
}

// setupRoutes registers all HTTP routes. Protected handlers are wrapped
// in the Authz middleware at registration.
func setupRoutes(deps routeDeps) *http.ServeMux {
	mux := http.NewServeMux()

	// Public endpoints.
	mux.Handle("POST /auth/token", hauth.TokenHandler(deps.AuthService))
	mux.Handle("POST /auth/signup", &hauth.SignupHandler{Users: deps.Users, Policy: deps.AuthProvider})
	mux.Handle("GET  /health", &hhttp.HealthHandler{DB: deps.DB, Version: deps.Config.Version})
	mux.Handle("GET  /ready", &hhttp.ReadyHandler{DB: deps.DB})
	mux.Handle("GET  /live", &hhttp.LiveHandler{})
	mux.Handle("GET  /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Unmatched paths get a JSON 404 instead of the stdlib text page.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.SafeError(w, http.StatusNotFound, errors.New("not found"))
	}))

	// Account endpoints.
	mux.Handle("GET  /auth/me", hauth.Authz(&hauth.MeHandler{Users: deps.Users}))
	mux.Handle("PUT  /auth/password", hauth.Authz(&hauth.PasswordHandler{Users: deps.Users, Policy: deps.AuthProvider}))

	// Domain endpoints register themselves behind Authz.
	hcontent.Register(mux, deps.ContentSvc, deps.Config.PaginationConfig())
	hanalytics.Register(mux, deps.AnalyticsSvc)
	hbilling.Register(mux, deps.BillingSvc)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain, outermost
// first: CORS, request ID, rate limiting, panic recovery, logging, input
// validation, body limits, timeout, tracing, metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, rateLimiter *middleware.IPRateLimiter, cfg *appconfig.ServerConfig) http.Handler {
	chain := handler

	// Applied in reverse order, innermost to outermost.
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Middleware()(chain)
	chain = requestid.Middleware(chain)

	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		// Same-origin deployments run without CORS headers.
		logger.Warn("CORS disabled", slog.Any("reason", err))
		return chain
	}
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))
	return middleware.CORS(*corsConfig)(chain)
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func runServer(logger *slog.Logger, handler http.Handler, database *sql.DB, cfg *appconfig.ServerConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the connection pool gauges fresh.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := database.Stats()
				obsmetrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
			}
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version),
			slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
