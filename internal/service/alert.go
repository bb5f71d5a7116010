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
	"go.uber.org/zap"
)

var alertTracer = otel.Tracer("service/alert")

// MilestoneDetector is the portfolio-side hook the scan uses to evaluate
// newly crossed milestones.
type MilestoneDetector interface {
	DetectMilestones(ctx context.Context, userID string) ([]domain.Milestone, error)
}

// AlertService runs the missed-rent and milestone scan and manages alerts.
type AlertService struct {
	alerts   port.AlertStore
	users    port.AuthStore
	detector MilestoneDetector
	notifier port.Notifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewAlertService creates a new alert service.
func NewAlertService(
	alerts port.AlertStore,
	users port.AuthStore,
	detector MilestoneDetector,
	notifier port.Notifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		alerts:   alerts,
		users:    users,
		detector: detector,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *AlertService) ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	ctx, span := alertTracer.Start(ctx, "AlertService.ListAlerts")
	defer span.End()

	return s.alerts.ListAlerts(ctx, userID)
}

// ExpectedTransactions lists the recurring payments the scan watches for a
// user, active and paused alike.
func (s *AlertService) ExpectedTransactions(ctx context.Context, userID string) ([]domain.ExpectedTransaction, error) {
	ctx, span := alertTracer.Start(ctx, "AlertService.ExpectedTransactions")
	defer span.End()

	return s.alerts.ListExpectedTransactions(ctx, userID)
}

func (s *AlertService) DismissAlert(ctx context.Context, userID, alertID string) error {
	ctx, span := alertTracer.Start(ctx, "AlertService.DismissAlert")
	defer span.End()

	return s.alerts.DismissAlert(ctx, userID, alertID)
}

// ============================================================
// Scan — POST /v1/internal/scan + nightly cron
// ============================================================

// RunScan sweeps all active expected transactions for missed payments, then
// evaluates milestones for every user seen in the sweep. Each alert is
// created at most once per anomaly: an expected transaction with an existing
// active alert is skipped.
func (s *AlertService) RunScan(ctx context.Context) error {
	ctx, span := alertTracer.Start(ctx, "AlertService.RunScan")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("scan", time.Since(start)) }()

	expected, err := s.alerts.ListAllActiveExpectedTransactions(ctx)
	if err != nil {
		s.metrics.IncrScan("error")
		return fmt.Errorf("list expected transactions: %w", err)
	}

	now := time.Now()
	users := make(map[string]struct{})
	created := 0

	for _, et := range expected {
		users[et.UserID] = struct{}{}

		if !finance.MissedRent(et, now) {
			continue
		}

		existing, err := s.alerts.GetActiveAlertForExpected(ctx, et.ID)
		if err != nil {
			s.logger.Warn("scan: dedup lookup failed",
				zap.String("expected_transaction_id", et.ID),
				zap.Error(err),
			)
			continue
		}
		if existing != nil {
			continue
		}

		alert := &domain.Alert{
			UserID:                et.UserID,
			PropertyID:            et.PropertyID,
			ExpectedTransactionID: et.ID,
			Type:                  domain.AlertMissedRent,
			Message: fmt.Sprintf("Expected %s payment of $%.2f was due on %s and has not arrived.",
				et.Category, math.Abs(et.Amount), et.NextExpected.Format("2 Jan 2006")),
		}

		saved, err := s.alerts.CreateAlert(ctx, alert)
		if err != nil {
			s.logger.Error("scan: failed to create alert",
				zap.String("expected_transaction_id", et.ID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.IncrAlertCreated(domain.AlertMissedRent)
		created++
		s.notify(ctx, saved)
	}

	milestones := s.scanMilestones(ctx, users)

	s.metrics.IncrScan("success")
	s.logger.Info("scan complete",
		zap.Int("expected_checked", len(expected)),
		zap.Int("alerts_created", created),
		zap.Int("milestones_detected", milestones),
	)
	return nil
}

// scanMilestones evaluates milestones per user and raises a milestone alert
// for each new crossing.
func (s *AlertService) scanMilestones(ctx context.Context, users map[string]struct{}) int {
	if s.detector == nil {
		return 0
	}

	total := 0
	for userID := range users {
		crossed, err := s.detector.DetectMilestones(ctx, userID)
		if err != nil {
			s.logger.Warn("scan: milestone detection failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			continue
		}

		for _, m := range crossed {
			total++
			alert := &domain.Alert{
				UserID:  userID,
				Type:    domain.AlertMilestone,
				Message: milestoneMessage(m),
			}
			saved, err := s.alerts.CreateAlert(ctx, alert)
			if err != nil {
				s.logger.Error("scan: failed to create milestone alert",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				continue
			}
			s.metrics.IncrAlertCreated(domain.AlertMilestone)
			s.notify(ctx, saved)
		}
	}
	return total
}

func milestoneMessage(m domain.Milestone) string {
	switch m.Type {
	case domain.MilestoneLVR:
		return fmt.Sprintf("Your LVR dropped below %.0f%% (now %.1f%%).", m.Threshold, m.Value)
	case domain.MilestoneEquity:
		return fmt.Sprintf("Your equity passed $%.0f (now $%.0f).", m.Threshold, m.Value)
	default:
		return fmt.Sprintf("Milestone reached: %s %.2f", m.Type, m.Threshold)
	}
}

// notify sends the alert email best-effort; delivery failures never fail
// the scan.
func (s *AlertService) notify(ctx context.Context, alert *domain.Alert) {
	if s.notifier == nil {
		return
	}

	user, err := s.users.GetUserByID(ctx, alert.UserID)
	if err != nil {
		s.logger.Warn("scan: could not resolve user for notification",
			zap.String("user_id", alert.UserID),
			zap.Error(err),
		)
		return
	}

	if err := s.notifier.SendAlert(ctx, user.Email, alert); err != nil {
		s.logger.Warn("scan: notification failed",
			zap.String("user_id", alert.UserID),
			zap.Error(err),
		)
	}
}
