package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"go.uber.org/zap"
)

func newInsightsService(store *mockPortfolioStore) *service.InsightsService {
	return service.NewInsightsService(store, observability.NewMetrics(), zap.NewNop())
}

func TestBenchmarks_FlagsExpensiveInsurance(t *testing.T) {
	store := &mockPortfolioStore{
		properties: []domain.Property{{
			ID:           "p1",
			State:        domain.StateNSW,
			CurrentValue: 500000,
			WeeklyRent:   500,
		}},
		propertyTransactions: []domain.Transaction{
			{Category: domain.CategoryInsurance, Amount: -2500},
			{Category: domain.CategoryRent, Amount: 500},
		},
	}
	svc := newInsightsService(store)

	report, err := svc.Benchmarks(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.State != domain.StateNSW {
		t.Errorf("expected NSW, got %s", report.State)
	}

	var insurance *domain.CategoryBenchmark
	for i := range report.Categories {
		if report.Categories[i].Category == "insurance" {
			insurance = &report.Categories[i]
		}
	}
	if insurance == nil {
		t.Fatal("expected an insurance benchmark")
	}
	// NSW: 180 per 100k on a 500k property = 900 average.
	if insurance.AverageAmount != 900 {
		t.Errorf("expected average 900, got %f", insurance.AverageAmount)
	}
	if insurance.Status != domain.BenchmarkAbove {
		t.Errorf("expected above, got %s", insurance.Status)
	}
	if insurance.PotentialSavings != 1600 {
		t.Errorf("expected savings 1600, got %f", insurance.PotentialSavings)
	}
}

func TestBenchmarks_OmitsCategoriesWithoutSpend(t *testing.T) {
	store := &mockPortfolioStore{
		properties: []domain.Property{{
			ID:           "p1",
			State:        domain.StateVIC,
			CurrentValue: 500000,
		}},
	}
	svc := newInsightsService(store)

	report, err := svc.Benchmarks(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Categories) != 0 {
		t.Errorf("expected no comparisons without spend, got %d", len(report.Categories))
	}
}

func TestBenchmarks_UnknownProperty(t *testing.T) {
	svc := newInsightsService(&mockPortfolioStore{})

	_, err := svc.Benchmarks(context.Background(), "user-1", "nope")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClimateRisk(t *testing.T) {
	store := &mockPortfolioStore{
		properties: []domain.Property{{
			ID:           "p1",
			FloodRisk:    "medium",
			BushfireRisk: "high",
		}},
	}
	svc := newInsightsService(store)

	risk, err := svc.ClimateRisk(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if risk.OverallRisk != domain.RiskHigh {
		t.Errorf("expected overall high, got %s", risk.OverallRisk)
	}
}

func TestClimateRisk_UnratedDefaultsToLow(t *testing.T) {
	store := &mockPortfolioStore{
		properties: []domain.Property{{ID: "p1"}},
	}
	svc := newInsightsService(store)

	risk, err := svc.ClimateRisk(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if risk.OverallRisk != domain.RiskLow {
		t.Errorf("expected overall low, got %s", risk.OverallRisk)
	}
}
