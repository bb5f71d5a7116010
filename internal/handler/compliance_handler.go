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
// Compliance
// ============================================================

func rentIncreaseHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/compliance/rent-increase/{state}")
		defer span.End()

		state := chi.URLParam(r, "state")
		span.SetAttributes(attribute.String("state", state))

		rule, err := svc.RentIncreaseRule(ctx, state)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, rule)
	}
}

func smsfStatusHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/compliance/smsf/status")
		defer span.End()

		var input domain.SMSFInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		status, err := svc.SMSFStatus(ctx, input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func rolePermissionsHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/entities/roles/{role}/permissions")
		defer span.End()

		role := chi.URLParam(r, "role")
		perms, err := svc.RolePermissions(ctx, role)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, perms)
	}
}
