package service

import (
	"context"
	"strings"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/finance"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var complianceTracer = otel.Tracer("service/compliance")

// ComplianceService answers jurisdiction and SMSF compliance questions. All
// rules live in-process, so there are no store dependencies.
type ComplianceService struct {
	logger *zap.Logger
}

// NewComplianceService creates a new compliance service.
func NewComplianceService(logger *zap.Logger) *ComplianceService {
	return &ComplianceService{logger: logger}
}

// RentIncreaseRule returns the rent increase rule for a state or territory.
func (s *ComplianceService) RentIncreaseRule(ctx context.Context, state string) (*domain.RentIncreaseRule, error) {
	_, span := complianceTracer.Start(ctx, "ComplianceService.RentIncreaseRule")
	defer span.End()
	span.SetAttributes(attribute.String("state", state))

	rule := finance.RentIncreaseRule(strings.ToUpper(state))
	if rule == nil {
		return nil, &domain.ErrNotFound{Resource: "rent increase rule", ID: state}
	}
	return rule, nil
}

// RolePermissions returns the permission set derived from an entity role.
func (s *ComplianceService) RolePermissions(ctx context.Context, role string) (*domain.EntityPermissions, error) {
	_, span := complianceTracer.Start(ctx, "ComplianceService.RolePermissions")
	defer span.End()
	span.SetAttributes(attribute.String("role", role))

	r := domain.EntityRole(strings.ToLower(role))
	switch r {
	case domain.RoleOwner, domain.RoleAdmin, domain.RoleMember, domain.RoleAccountant:
	default:
		return nil, &domain.ErrNotFound{Resource: "entity role", ID: role}
	}

	perms := finance.PermissionsForRole(r)
	return &perms, nil
}

// SMSFStatus classifies a fund member's drawdown and contribution position.
func (s *ComplianceService) SMSFStatus(ctx context.Context, input domain.SMSFInput) (*domain.SMSFStatus, error) {
	_, span := complianceTracer.Start(ctx, "ComplianceService.SMSFStatus")
	defer span.End()

	if input.MemberAge < 0 {
		return nil, &domain.ErrValidation{Field: "member_age", Message: "must not be negative"}
	}
	if input.MonthsElapsed < 0 || input.MonthsElapsed > 12 {
		return nil, &domain.ErrValidation{Field: "months_elapsed", Message: "must be between 0 and 12"}
	}

	status := finance.SMSFCompliance(input)
	return &status, nil
}
