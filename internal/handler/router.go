package handler

import (
	"net/http"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the application services the router exposes.
type Services struct {
	Portfolio  *service.PortfolioService
	Tax        *service.TaxService
	Insights   *service.InsightsService
	Compliance *service.ComplianceService
	Alerts     *service.AlertService
	Auth       *service.AuthService
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, cronToken string, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Portfolio, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Authentication
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			if svcs.Auth == nil {
				r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusServiceUnavailable, "auth service unavailable: Supabase not configured")
				}))
				return
			}
			r.Post("/register", authRegisterHandler(svcs.Auth, logger))
			r.Post("/login", authLoginHandler(svcs.Auth, logger))
			r.Post("/refresh", authRefreshHandler(svcs.Auth, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(svcs.Auth, logger))
				r.Post("/logout", authLogoutHandler(svcs.Auth, logger))
			})
		})

		// =============================================
		// Internal scan trigger (cron token, not JWT)
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(CronAuthMiddleware(cronToken, logger))
			r.Post("/internal/scan", scanHandler(svcs.Alerts, logger))
		})

		// =============================================
		// Authenticated API
		// =============================================
		if svcs.Auth == nil {
			return
		}
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))

			// Properties
			r.Get("/properties", listPropertiesHandler(svcs.Portfolio, logger))
			r.Get("/properties/{propertyId}", getPropertyHandler(svcs.Portfolio, logger))
			r.Get("/properties/{propertyId}/yield", propertyYieldHandler(svcs.Portfolio, logger))
			r.Get("/properties/{propertyId}/benchmarks", benchmarksHandler(svcs.Insights, logger))
			r.Get("/properties/{propertyId}/climate-risk", climateRiskHandler(svcs.Insights, logger))
			r.Get("/properties/{propertyId}/cgt", propertyCGTHandler(svcs.Tax, logger))
			r.Get("/properties/{propertyId}/depreciation", propertyDepreciationHandler(svcs.Tax, logger))

			// Tax
			r.Post("/tax/cgt", calculateCGTHandler(svcs.Tax, logger))
			r.Post("/tax/depreciation", depreciationHandler(svcs.Tax, logger))
			r.Get("/tax/forecast", forecastHandler(svcs.Tax, logger))

			// Compliance
			r.Get("/compliance/rent-increase/{state}", rentIncreaseHandler(svcs.Compliance, logger))
			r.Post("/compliance/smsf/status", smsfStatusHandler(svcs.Compliance, logger))
			r.Get("/entities/roles/{role}/permissions", rolePermissionsHandler(svcs.Compliance, logger))

			// Portfolio
			r.Get("/portfolio/metrics", portfolioMetricsHandler(svcs.Portfolio, logger))
			r.Get("/portfolio/milestones", milestonesHandler(svcs.Portfolio, logger))

			// Alerts
			r.Get("/alerts", listAlertsHandler(svcs.Alerts, logger))
			r.Get("/alerts/expected", listExpectedTransactionsHandler(svcs.Alerts, logger))
			r.Post("/alerts/{alertId}/dismiss", dismissAlertHandler(svcs.Alerts, logger))

			// Scan counters
			r.Get("/metrics/scans", scanMetricsHandler(metrics))
		})
	})

	return r
}

// ============================================================
// Operational endpoints
// ============================================================

func healthzHandler(portfolioSvc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "portfolio-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if portfolioSvc != nil {
			start := time.Now()
			_, err := portfolioSvc.ListProperties(ctx, "health-check")
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func scanMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetScanSnapshot())
	}
}
