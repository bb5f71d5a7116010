// Package service provides the business logic layer (use cases) over the
// pure calculators in internal/finance and the persistence ports.
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
	"golang.org/x/sync/errgroup"
)

var portfolioTracer = otel.Tracer("service/portfolio")

// PropertySnapshot is the per-property position used for milestone baselines.
type PropertySnapshot struct {
	LVR    float64
	Equity float64
}

// PortfolioService answers portfolio-level questions: metrics, yields and
// milestone detection.
type PortfolioService struct {
	store        port.PortfolioStore
	metricsCache port.Cache[domain.PortfolioMetrics]
	baseline     port.Cache[PropertySnapshot]
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	store port.PortfolioStore,
	metricsCache port.Cache[domain.PortfolioMetrics],
	baseline port.Cache[PropertySnapshot],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *PortfolioService {
	return &PortfolioService{
		store:        store,
		metricsCache: metricsCache,
		baseline:     baseline,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *PortfolioService) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.ListProperties")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.store.ListProperties(ctx, userID)
}

func (s *PortfolioService) GetProperty(ctx context.Context, userID, propertyID string) (*domain.Property, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.GetProperty")
	defer span.End()

	return s.store.GetProperty(ctx, userID, propertyID)
}

// ============================================================
// Portfolio metrics — GET /v1/portfolio/metrics
// ============================================================

// Metrics computes the portfolio position: total value (latest valuation per
// property, falling back to the stored current value), debt, equity, LVR and
// yields over the trailing twelve months. Results are cached briefly.
func (s *PortfolioService) Metrics(ctx context.Context, userID string) (*domain.PortfolioMetrics, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.Metrics")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("portfolio_metrics", time.Since(start)) }()

	cacheKey := "metrics:" + userID
	if cached, ok := s.metricsCache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("portfolio_metrics")
		return &cached, nil
	}
	s.metrics.IncrCacheMiss("portfolio_metrics")

	now := time.Now()

	var (
		properties   []domain.Property
		loans        []domain.Loan
		transactions []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = s.store.ListProperties(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = s.store.ListLoans(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(gctx, userID, now.AddDate(-1, 0, 0), now)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrStoreError("portfolio")
		return nil, fmt.Errorf("fetch portfolio: %w", err)
	}

	totalValue := 0.0
	annualRent := 0.0
	for _, p := range properties {
		totalValue += s.propertyValue(ctx, p)
		annualRent += p.WeeklyRent * 52
	}

	totalDebt := 0.0
	for _, l := range loans {
		totalDebt += l.CurrentBalance
	}

	annualExpenses := 0.0
	for _, t := range transactions {
		if t.Amount < 0 {
			annualExpenses += math.Abs(t.Amount)
		}
	}

	lvr := 0.0
	if totalValue > 0 {
		lvr = totalDebt / totalValue * 100
	}

	m := domain.PortfolioMetrics{
		UserID:        userID,
		TotalValue:    totalValue,
		TotalDebt:     totalDebt,
		TotalEquity:   totalValue - totalDebt,
		LVR:           lvr,
		PropertyCount: len(properties),
		GrossYield:    finance.GrossYield(annualRent, totalValue),
		NetYield:      finance.NetYield(annualRent, annualExpenses, totalValue),
	}

	s.metricsCache.Set(cacheKey, m)
	return &m, nil
}

// propertyValue prefers the latest valuation over the stored current value.
func (s *PortfolioService) propertyValue(ctx context.Context, p domain.Property) float64 {
	v, err := s.store.GetLatestValuation(ctx, p.ID)
	if err != nil || v == nil {
		return p.CurrentValue
	}
	return v.Value
}

// ============================================================
// Property yield — GET /v1/properties/{propertyId}/yield
// ============================================================

func (s *PortfolioService) PropertyYield(ctx context.Context, userID, propertyID string) (*domain.PropertyYield, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.PropertyYield")
	defer span.End()

	property, err := s.store.GetProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transactions, err := s.store.ListPropertyTransactions(ctx, propertyID, now.AddDate(-1, 0, 0), now)
	if err != nil {
		s.metrics.IncrStoreError("portfolio")
		return nil, fmt.Errorf("fetch property transactions: %w", err)
	}

	annualExpenses := 0.0
	for _, t := range transactions {
		if t.Amount < 0 {
			annualExpenses += math.Abs(t.Amount)
		}
	}

	value := s.propertyValue(ctx, *property)
	annualRent := property.WeeklyRent * 52

	return &domain.PropertyYield{
		PropertyID:     propertyID,
		PropertyValue:  value,
		AnnualRent:     annualRent,
		AnnualExpenses: annualExpenses,
		GrossYield:     finance.GrossYield(annualRent, value),
		NetYield:       finance.NetYield(annualRent, annualExpenses, value),
	}, nil
}

// ============================================================
// Milestones — GET /v1/portfolio/milestones + nightly scan
// ============================================================

func (s *PortfolioService) Milestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.Milestones")
	defer span.End()

	return s.store.ListMilestones(ctx, userID)
}

// DetectMilestones evaluates every property against its resolved thresholds
// (defaults, then the user's preference, then the per-property override) and
// persists any newly crossed milestone. The first scan for a property only
// records its baseline.
func (s *PortfolioService) DetectMilestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	ctx, span := portfolioTracer.Start(ctx, "PortfolioService.DetectMilestones")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	properties, err := s.store.ListProperties(ctx, userID)
	if err != nil {
		s.metrics.IncrStoreError("portfolio")
		return nil, fmt.Errorf("list properties: %w", err)
	}

	globalPref, err := s.store.GetThresholdPreference(ctx, userID)
	if err != nil {
		s.metrics.IncrStoreError("portfolio")
		return nil, fmt.Errorf("threshold preference: %w", err)
	}

	var detected []domain.Milestone
	for _, p := range properties {
		crossed, err := s.detectPropertyMilestones(ctx, userID, p, globalPref)
		if err != nil {
			s.logger.Warn("milestone detection failed for property",
				zap.String("property_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		detected = append(detected, crossed...)
	}

	if len(detected) > 0 {
		s.metrics.AddMilestones(len(detected))
	}
	return detected, nil
}

func (s *PortfolioService) detectPropertyMilestones(ctx context.Context, userID string, p domain.Property, globalPref *domain.ThresholdOverride) ([]domain.Milestone, error) {
	override, err := s.store.GetPropertyThresholdOverride(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("property override: %w", err)
	}
	cfg := finance.ResolveThresholds(globalPref, override)

	loans, err := s.store.ListLoansByProperty(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loans: %w", err)
	}
	debt := 0.0
	for _, l := range loans {
		debt += l.CurrentBalance
	}

	value := s.propertyValue(ctx, p)
	curr := PropertySnapshot{Equity: value - debt}
	if value > 0 {
		curr.LVR = debt / value * 100
	}

	baselineKey := "milestone:" + p.ID
	prev, ok := s.baseline.Get(baselineKey)
	s.baseline.Set(baselineKey, curr)
	if !ok {
		// First observation; record the position and wait for movement.
		return nil, nil
	}

	crossed := finance.CrossedMilestones(cfg, prev.LVR, curr.LVR, prev.Equity, curr.Equity)
	persisted := make([]domain.Milestone, 0, len(crossed))
	for _, m := range crossed {
		m.UserID = userID
		m.DetectedAt = time.Now().UTC()
		created, err := s.store.CreateMilestone(ctx, &m)
		if err != nil {
			s.metrics.IncrStoreError("portfolio")
			return persisted, fmt.Errorf("create milestone: %w", err)
		}
		s.logger.Info("milestone crossed",
			zap.String("user_id", userID),
			zap.String("property_id", p.ID),
			zap.String("type", string(m.Type)),
			zap.Float64("threshold", m.Threshold),
		)
		persisted = append(persisted, *created)
	}
	return persisted, nil
}
