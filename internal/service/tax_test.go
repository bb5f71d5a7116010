package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"go.uber.org/zap"
)

func newTaxService(store *mockPortfolioStore) *service.TaxService {
	return service.NewTaxService(store, observability.NewMetrics(), zap.NewNop())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateCapitalGain(t *testing.T) {
	svc := newTaxService(&mockPortfolioStore{})

	result, err := svc.CalculateCapitalGain(context.Background(), domain.CapitalGainInput{
		CostBase:  500000,
		SalePrice: 750000,
		SellingCosts: domain.SellingCosts{
			AgentCommission: 15000,
			LegalFees:       2000,
			MarketingCosts:  3000,
		},
		PurchaseDate:   date(2020, time.January, 15),
		SettlementDate: date(2024, time.June, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.CapitalGain != 230000 {
		t.Errorf("expected gain 230000, got %f", result.CapitalGain)
	}
	if result.DiscountedGain != 115000 {
		t.Errorf("expected discounted gain 115000, got %f", result.DiscountedGain)
	}
	if !result.HeldOverTwelveMonths {
		t.Error("expected twelve month discount to apply")
	}
}

func TestCalculateCapitalGain_RejectsBackwardsDates(t *testing.T) {
	svc := newTaxService(&mockPortfolioStore{})

	_, err := svc.CalculateCapitalGain(context.Background(), domain.CapitalGainInput{
		CostBase:       500000,
		SalePrice:      600000,
		PurchaseDate:   date(2024, time.June, 1),
		SettlementDate: date(2020, time.January, 15),
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPropertyCGTEstimate(t *testing.T) {
	store := &mockPortfolioStore{
		properties: []domain.Property{{
			ID:            "p1",
			PurchasePrice: 500000,
			PurchaseDate:  date(2020, time.January, 15),
			CurrentValue:  700000,
		}},
		propertyTransactions: []domain.Transaction{
			{Category: domain.CategoryStampDuty, Amount: -20000},
			{Category: domain.CategoryConveyancing, Amount: -1500},
			{Category: domain.CategoryRepairs, Amount: -5000}, // not a capital cost
		},
	}
	svc := newTaxService(store)

	est, err := svc.PropertyCGTEstimate(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if est.CostBase != 521500 {
		t.Errorf("expected cost base 521500, got %f", est.CostBase)
	}
	if est.Result.CapitalGain != 700000-521500 {
		t.Errorf("unexpected gain %f", est.Result.CapitalGain)
	}
	if !est.Result.HeldOverTwelveMonths {
		t.Error("expected discount for long holding")
	}
}

func TestDepreciation(t *testing.T) {
	svc := newTaxService(&mockPortfolioStore{})

	report := svc.Depreciation(context.Background(), []domain.DepreciationAsset{
		{Name: "Carpet", OriginalCost: 10000, EffectiveLife: 10, Method: domain.MethodPrimeCost},
		{Name: "Oven", OriginalCost: 2000, EffectiveLife: 10, Method: domain.MethodDiminishingValue},
		{Name: "Broken", OriginalCost: -1, EffectiveLife: 10, Method: domain.MethodPrimeCost},
	})

	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Entries))
	}
	if report.Entries[0].YearlyDeduction != 1000 {
		t.Errorf("expected prime cost 1000, got %f", report.Entries[0].YearlyDeduction)
	}
	if report.Entries[1].YearlyDeduction != 400 {
		t.Errorf("expected diminishing 400, got %f", report.Entries[1].YearlyDeduction)
	}
	if report.Entries[2].YearlyDeduction != 0 {
		t.Errorf("invalid asset must contribute zero, got %f", report.Entries[2].YearlyDeduction)
	}
	if report.TotalYearly != 1400 {
		t.Errorf("expected total 1400, got %f", report.TotalYearly)
	}
}

func TestPropertyDepreciation_UnknownProperty(t *testing.T) {
	svc := newTaxService(&mockPortfolioStore{})

	_, err := svc.PropertyDepreciation(context.Background(), "user-1", "nope")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestForecast_PriorYearFill(t *testing.T) {
	// FY 2023-24 ran 1 Jul 2023 to 30 Jun 2024, so it is fully elapsed and
	// monthsElapsed is 12; with every month populated the forecast equals
	// the actuals.
	fyStart := date(2023, time.July, 1)
	var current []domain.Transaction
	for m := 0; m < 12; m++ {
		current = append(current, domain.Transaction{
			Date:     fyStart.AddDate(0, m, 0),
			Amount:   -500,
			Category: domain.CategoryInsurance,
		})
	}

	store := &mockPortfolioStore{
		transactions: current,
		priorCutoff:  fyStart,
	}
	svc := newTaxService(store)

	report, err := svc.Forecast(context.Background(), "user-1", "2023-24")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.MonthsElapsed != 12 {
		t.Errorf("expected 12 months elapsed, got %d", report.MonthsElapsed)
	}
	if len(report.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(report.Categories))
	}
	cf := report.Categories[0]
	if cf.Actual != 6000 || cf.Forecast != 6000 {
		t.Errorf("expected 6000/6000, got %f/%f", cf.Actual, cf.Forecast)
	}
	if report.Confidence != domain.ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", report.Confidence)
	}
}

func TestForecast_BlendsPriorYearMonths(t *testing.T) {
	fyStart := date(2023, time.July, 1)

	// Six months of actuals at 600/month (Jul-Dec 2023).
	var current []domain.Transaction
	for m := 0; m < 6; m++ {
		current = append(current, domain.Transaction{
			Date:     fyStart.AddDate(0, m, 0),
			Amount:   -600,
			Category: domain.CategoryManagementFees,
		})
	}
	// A full prior year at 500/month.
	var prior []domain.Transaction
	for m := 0; m < 12; m++ {
		prior = append(prior, domain.Transaction{
			Date:     fyStart.AddDate(-1, m, 0),
			Amount:   -500,
			Category: domain.CategoryManagementFees,
		})
	}

	store := &mockPortfolioStore{
		transactions:      current,
		priorTransactions: prior,
		priorCutoff:       fyStart,
	}
	svc := newTaxService(store)

	report, err := svc.Forecast(context.Background(), "user-1", "2023-24")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cf := report.Categories[0]
	if cf.Actual != 3600 {
		t.Errorf("expected actual 3600, got %f", cf.Actual)
	}
	// Forecast = 3600 actual + the prior year's Jan-Jun (6 x 500).
	if cf.Forecast != 6600 {
		t.Errorf("expected forecast 6600, got %f", cf.Forecast)
	}
	if !report.HasPriorYear {
		t.Error("expected prior year flag")
	}
	if report.Confidence != domain.ConfidenceHigh {
		t.Errorf("expected high confidence with prior year, got %s", report.Confidence)
	}
}

func TestForecast_InvalidLabel(t *testing.T) {
	svc := newTaxService(&mockPortfolioStore{})

	_, err := svc.Forecast(context.Background(), "user-1", "banana")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
