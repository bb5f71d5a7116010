package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var insightsTracer = otel.Tracer("service/insights")

// InsightsService compares a property's running costs against state reference
// tables and rolls up climate risk.
type InsightsService struct {
	store   port.PortfolioStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewInsightsService creates a new insights service.
func NewInsightsService(store port.PortfolioStore, metrics *observability.Metrics, logger *zap.Logger) *InsightsService {
	return &InsightsService{store: store, metrics: metrics, logger: logger}
}

// ============================================================
// Benchmarks — GET /v1/properties/{propertyId}/benchmarks
// ============================================================

// Benchmarks compares the trailing twelve months of insurance, council rates
// and management fees against the property's state averages. Categories with
// nothing to compare are omitted.
func (s *InsightsService) Benchmarks(ctx context.Context, userID, propertyID string) (*domain.BenchmarkReport, error) {
	ctx, span := insightsTracer.Start(ctx, "InsightsService.Benchmarks")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", propertyID))

	property, err := s.store.GetProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transactions, err := s.store.ListPropertyTransactions(ctx, propertyID, now.AddDate(-1, 0, 0), now)
	if err != nil {
		s.metrics.IncrStoreError("insights")
		return nil, fmt.Errorf("fetch property transactions: %w", err)
	}

	var insurance, rates, managementFees, rent float64
	for _, t := range transactions {
		switch t.Category {
		case domain.CategoryInsurance:
			insurance += math.Abs(t.Amount)
		case domain.CategoryCouncilRates:
			rates += math.Abs(t.Amount)
		case domain.CategoryManagementFees:
			managementFees += math.Abs(t.Amount)
		case domain.CategoryRent:
			if t.Amount > 0 {
				rent += t.Amount
			}
		}
	}

	report := &domain.BenchmarkReport{
		PropertyID: propertyID,
		State:      property.State,
		Categories: []domain.CategoryBenchmark{},
	}

	if b := finance.InsuranceBenchmark(insurance, property.CurrentValue, property.State); b != nil {
		report.Categories = append(report.Categories, *b)
	}
	if b := finance.CouncilRatesBenchmark(rates, property.CurrentValue, property.State); b != nil {
		report.Categories = append(report.Categories, *b)
	}
	if b := finance.ManagementFeeBenchmark(managementFees, rent, property.State); b != nil {
		report.Categories = append(report.Categories, *b)
	}

	return report, nil
}

// ============================================================
// Climate risk — GET /v1/properties/{propertyId}/climate-risk
// ============================================================

func (s *InsightsService) ClimateRisk(ctx context.Context, userID, propertyID string) (*domain.ClimateRisk, error) {
	ctx, span := insightsTracer.Start(ctx, "InsightsService.ClimateRisk")
	defer span.End()

	property, err := s.store.GetProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	flood := finance.ParseRiskLevel(property.FloodRisk)
	bushfire := finance.ParseRiskLevel(property.BushfireRisk)

	return &domain.ClimateRisk{
		PropertyID:   propertyID,
		FloodRisk:    flood,
		BushfireRisk: bushfire,
		OverallRisk:  finance.OverallRisk(flood, bushfire),
	}, nil
}
