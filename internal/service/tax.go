package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var taxTracer = otel.Tracer("service/tax")

// TaxService assembles CGT, depreciation and FY forecast reports.
type TaxService struct {
	store   port.PortfolioStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewTaxService creates a new tax service.
func NewTaxService(store port.PortfolioStore, metrics *observability.Metrics, logger *zap.Logger) *TaxService {
	return &TaxService{store: store, metrics: metrics, logger: logger}
}

// ============================================================
// CGT — POST /v1/tax/cgt
// ============================================================

// CalculateCapitalGain validates and runs the CGT calculator on
// caller-supplied numbers.
func (s *TaxService) CalculateCapitalGain(ctx context.Context, input domain.CapitalGainInput) (*domain.CapitalGainResult, error) {
	_, span := taxTracer.Start(ctx, "TaxService.CalculateCapitalGain")
	defer span.End()

	if input.PurchaseDate.IsZero() || input.SettlementDate.IsZero() {
		return nil, &domain.ErrValidation{Field: "dates", Message: "purchase_date and settlement_date are required"}
	}
	if input.SettlementDate.Before(input.PurchaseDate) {
		return nil, &domain.ErrValidation{Field: "settlement_date", Message: "settlement_date is before purchase_date"}
	}

	result := finance.CapitalGain(input)
	return &result, nil
}

// ============================================================
// CGT estimate — GET /v1/properties/{propertyId}/cgt
// ============================================================

// PropertyCGTEstimate models selling the property today at its current value.
// Cost base = purchase price plus the acquisition-cost transactions recorded
// against the property.
func (s *TaxService) PropertyCGTEstimate(ctx context.Context, userID, propertyID string) (*domain.PropertyCGTEstimate, error) {
	ctx, span := taxTracer.Start(ctx, "TaxService.PropertyCGTEstimate")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", propertyID))

	property, err := s.store.GetProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transactions, err := s.store.ListPropertyTransactions(ctx, propertyID, property.PurchaseDate, now)
	if err != nil {
		s.metrics.IncrStoreError("tax")
		return nil, fmt.Errorf("fetch property transactions: %w", err)
	}

	costBase := finance.CostBase(property.PurchasePrice, transactions)
	result := finance.CapitalGain(domain.CapitalGainInput{
		CostBase:       costBase,
		SalePrice:      property.CurrentValue,
		PurchaseDate:   property.PurchaseDate,
		SettlementDate: now,
	})

	return &domain.PropertyCGTEstimate{
		PropertyID: propertyID,
		CostBase:   costBase,
		SalePrice:  property.CurrentValue,
		Result:     result,
	}, nil
}

// ============================================================
// Depreciation — POST /v1/tax/depreciation and per-property schedule
// ============================================================

// Depreciation computes the yearly claim for a set of assets. Assets with
// invalid inputs contribute zero rather than failing the whole report.
func (s *TaxService) Depreciation(ctx context.Context, assets []domain.DepreciationAsset) *domain.DepreciationReport {
	_, span := taxTracer.Start(ctx, "TaxService.Depreciation")
	defer span.End()

	report := &domain.DepreciationReport{Entries: make([]domain.DepreciationEntry, 0, len(assets))}
	for _, a := range assets {
		deduction := finance.YearlyDeduction(a.OriginalCost, a.EffectiveLife, a.Method)
		report.Entries = append(report.Entries, domain.DepreciationEntry{Asset: a, YearlyDeduction: deduction})
		report.TotalYearly += deduction
	}
	return report
}

// PropertyDepreciation builds the schedule from the assets recorded against
// a property.
func (s *TaxService) PropertyDepreciation(ctx context.Context, userID, propertyID string) (*domain.DepreciationReport, error) {
	ctx, span := taxTracer.Start(ctx, "TaxService.PropertyDepreciation")
	defer span.End()

	if _, err := s.store.GetProperty(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	assets, err := s.store.ListDepreciationAssets(ctx, propertyID)
	if err != nil {
		s.metrics.IncrStoreError("tax")
		return nil, fmt.Errorf("fetch depreciation assets: %w", err)
	}
	return s.Depreciation(ctx, assets), nil
}

// ============================================================
// FY forecast — GET /v1/tax/forecast?fy=2024-25
// ============================================================

// Forecast projects full-financial-year category totals from the partial
// year's actuals, filling still-to-come months from the prior FY where
// history exists. Amounts are reported as magnitudes per category.
func (s *TaxService) Forecast(ctx context.Context, userID, fyLabel string) (*domain.TaxForecastReport, error) {
	ctx, span := taxTracer.Start(ctx, "TaxService.Forecast")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("financial_year", fyLabel),
	)

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("tax_forecast", time.Since(start)) }()

	if fyLabel == "" {
		fyLabel = finance.FinancialYearLabel(time.Now())
	}
	fyStart, fyEnd, err := finance.FinancialYearRange(fyLabel)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "fy", Message: err.Error()}
	}

	var current, prior []domain.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.store.ListTransactions(gctx, userID, fyStart, fyEnd)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.store.ListTransactions(gctx, userID, fyStart.AddDate(-1, 0, 0), fyEnd.AddDate(-1, 0, 0))
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrStoreError("tax")
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	monthsElapsed := 12
	now := time.Now()
	if now.Before(fyEnd) {
		monthsElapsed = finance.MonthsElapsedInFY(fyStart, now)
	}

	currentByCategory := groupByCategoryMonth(current)
	priorByCategory := groupByCategoryMonth(prior)
	hasPriorYear := len(prior) > 0

	categories := make(map[string]struct{})
	for c := range currentByCategory {
		categories[c] = struct{}{}
	}
	for c := range priorByCategory {
		categories[c] = struct{}{}
	}
	names := make([]string, 0, len(categories))
	for c := range categories {
		names = append(names, c)
	}
	sort.Strings(names)

	report := &domain.TaxForecastReport{
		FinancialYear: fyLabel,
		MonthsElapsed: monthsElapsed,
		Categories:    make([]domain.CategoryForecast, 0, len(names)),
		Confidence:    finance.Confidence(monthsElapsed, hasPriorYear),
		HasPriorYear:  hasPriorYear,
	}
	for _, name := range names {
		actual, forecast := finance.CategoryForecast(currentByCategory[name], priorByCategory[name], monthsElapsed)
		report.Categories = append(report.Categories, domain.CategoryForecast{
			Category: name,
			Actual:   actual,
			Forecast: forecast,
		})
		report.TotalActual += actual
		report.TotalForecast += forecast
	}

	return report, nil
}

// groupByCategoryMonth buckets transaction magnitudes by category and
// calendar month.
func groupByCategoryMonth(transactions []domain.Transaction) map[string]domain.MonthlyTotals {
	grouped := make(map[string]domain.MonthlyTotals)
	for _, t := range transactions {
		if t.Category == "" {
			continue
		}
		months, ok := grouped[t.Category]
		if !ok {
			months = make(domain.MonthlyTotals)
			grouped[t.Category] = months
		}
		months[int(t.Date.Month())] += math.Abs(t.Amount)
	}
	return grouped
}
