package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Tax calculators
// ============================================================

func calculateCGTHandler(svc *service.TaxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/tax/cgt")
		defer span.End()

		var input domain.CapitalGainInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := svc.CalculateCapitalGain(ctx, input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func propertyCGTHandler(svc *service.TaxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}/cgt")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		estimate, err := svc.PropertyCGTEstimate(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, estimate)
	}
}

func depreciationHandler(svc *service.TaxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/tax/depreciation")
		defer span.End()

		var req struct {
			Assets []domain.DepreciationAsset `json:"assets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, svc.Depreciation(ctx, req.Assets))
	}
}

func propertyDepreciationHandler(svc *service.TaxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/properties/{propertyId}/depreciation")
		defer span.End()

		propertyID := chi.URLParam(r, "propertyId")
		span.SetAttributes(attribute.String("property.id", propertyID))

		report, err := svc.PropertyDepreciation(ctx, UserIDFromContext(ctx), propertyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func forecastHandler(svc *service.TaxService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tax/forecast")
		defer span.End()

		fy := r.URL.Query().Get("fy")
		if fy != "" {
			span.SetAttributes(attribute.String("financial_year", fy))
		}

		report, err := svc.Forecast(ctx, UserIDFromContext(ctx), fy)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
