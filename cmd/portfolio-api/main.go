package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/config"
	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/handler"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/cache"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/notify"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/resilience"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/scheduler"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/supabase"
	"github.com/ItsMattG/property-tracker-sub009/internal/port"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("scan_schedule", cfg.ScanSchedule),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "property-tracker-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	metricsCache := cache.New[domain.PortfolioMetrics](cfg.CacheTTL)
	baselineCache := cache.New[service.PropertySnapshot](cfg.BaselineTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Store ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var store *supabase.Client
	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as data backend",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		store = supabase.NewClient(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			cb,
			resilienceCfg,
			logger,
		)
	} else {
		logger.Warn("Supabase not configured, API routes requiring persistence unavailable")
	}

	// --- Notifier ---
	var notifier port.Notifier
	if cfg.EmailEnabled && cfg.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
		logger.Info("email notifications enabled", zap.String("smtp_host", cfg.SMTPHost))
	}

	// --- Services ---
	var svcs handler.Services
	var alertSvc *service.AlertService
	if store != nil {
		portfolioSvc := service.NewPortfolioService(store, metricsCache, baselineCache, metrics, logger)
		alertSvc = service.NewAlertService(store, store, portfolioSvc, notifier, metrics, logger)

		svcs = handler.Services{
			Portfolio:  portfolioSvc,
			Tax:        service.NewTaxService(store, metrics, logger),
			Insights:   service.NewInsightsService(store, metrics, logger),
			Compliance: service.NewComplianceService(logger),
			Alerts:     alertSvc,
			Auth:       service.NewAuthService(store, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger),
		}
	} else {
		svcs = handler.Services{Compliance: service.NewComplianceService(logger)}
	}

	// --- Nightly scan ---
	if alertSvc != nil {
		sched, err := scheduler.New(cfg.ScanSchedule, alertSvc.RunScan, logger)
		if err != nil {
			logger.Fatal("failed to init scan scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	// --- Router ---
	router := handler.NewRouter(svcs, cfg.CronToken, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
