package handler

import (
	"net/http"

	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Alerts & anomaly scan
// ============================================================

func listAlertsHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/alerts")
		defer span.End()

		alerts, err := svc.ListAlerts(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, alerts)
	}
}

func listExpectedTransactionsHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/alerts/expected")
		defer span.End()

		expected, err := svc.ExpectedTransactions(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, expected)
	}
}

func dismissAlertHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/alerts/{alertId}/dismiss")
		defer span.End()

		alertID := chi.URLParam(r, "alertId")
		span.SetAttributes(attribute.String("alert.id", alertID))

		if err := svc.DismissAlert(ctx, UserIDFromContext(ctx), alertID); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func scanHandler(svc *service.AlertService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/internal/scan")
		defer span.End()

		if svc == nil {
			writeError(w, http.StatusServiceUnavailable, "scan unavailable: Supabase not configured")
			return
		}

		if err := svc.RunScan(ctx); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
	}
}
