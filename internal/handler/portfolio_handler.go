package handler

import (
	"net/http"

	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Properties & portfolio
// ============================================================

func listPropertiesHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties")
		defer span.End()

		properties, err := svc.ListProperties(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, properties)
	}
}

func getPropertyHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		property, err := svc.GetProperty(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, property)
	}
}

func propertyYieldHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}/yield")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		yield, err := svc.PropertyYield(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, yield)
	}
}

func portfolioMetricsHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portfolio/metrics")
		defer span.End()

		metrics, err := svc.Metrics(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func milestonesHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/portfolio/milestones")
		defer span.End()

		milestones, err := svc.Milestones(ctx, UserIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, milestones)
	}
}
