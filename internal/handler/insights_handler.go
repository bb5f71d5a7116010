package handler

import (
	"net/http"

	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Benchmarks & climate risk
// ============================================================

func benchmarksHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}/benchmarks")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		report, err := svc.Benchmarks(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func climateRiskHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}/climate-risk")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		risk, err := svc.ClimateRisk(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, risk)
	}
}
