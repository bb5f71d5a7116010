package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/google/uuid"
)

// ============================================================
// AlertStore implementation — expected transactions and alerts
// ============================================================

// expectedTransactionRow maps the expected_transactions table.
type expectedTransactionRow struct {
	ID             string  `json:"id"`
	PropertyID     string  `json:"property_id"`
	UserID         string  `json:"user_id"`
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	FrequencyDays  int     `json:"frequency_days"`
	NextExpected   string  `json:"next_expected"`
	AlertDelayDays int     `json:"alert_delay_days"`
	Active         bool    `json:"active"`
}

func (r expectedTransactionRow) toDomain() domain.ExpectedTransaction {
	return domain.ExpectedTransaction{
		ID:             r.ID,
		PropertyID:     r.PropertyID,
		UserID:         r.UserID,
		Category:       r.Category,
		Amount:         r.Amount,
		FrequencyDays:  r.FrequencyDays,
		NextExpected:   parseDate(r.NextExpected),
		AlertDelayDays: r.AlertDelayDays,
		Active:         r.Active,
	}
}

func (c *Client) listExpected(ctx context.Context, path string) ([]domain.ExpectedTransaction, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.ExpectedTransaction{}, nil
	}

	var rows []expectedTransactionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode expected_transactions: %w", err)
	}

	expected := make([]domain.ExpectedTransaction, 0, len(rows))
	for _, r := range rows {
		expected = append(expected, r.toDomain())
	}
	return expected, nil
}

func (c *Client) ListExpectedTransactions(ctx context.Context, userID string) ([]domain.ExpectedTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListExpectedTransactions")
	defer span.End()

	path := fmt.Sprintf("expected_transactions?user_id=eq.%s&order=next_expected.asc", userID)
	return c.listExpected(ctx, path)
}

// ListAllActiveExpectedTransactions spans all users; used by the nightly scan.
func (c *Client) ListAllActiveExpectedTransactions(ctx context.Context) ([]domain.ExpectedTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAllActiveExpectedTransactions")
	defer span.End()

	return c.listExpected(ctx, "expected_transactions?active=eq.true&order=next_expected.asc")
}

// GetActiveAlertForExpected returns the open alert for an expected
// transaction, or nil when none exists. The scan uses this to avoid
// duplicate alerts for the same missed payment.
func (c *Client) GetActiveAlertForExpected(ctx context.Context, expectedTransactionID string) (*domain.Alert, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetActiveAlertForExpected")
	defer span.End()

	path := fmt.Sprintf("alerts?expected_transaction_id=eq.%s&status=eq.active&limit=1", expectedTransactionID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil
	}

	var rows []domain.Alert
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) CreateAlert(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateAlert")
	defer span.End()

	data := map[string]any{
		"id":         uuid.New().String(),
		"user_id":    alert.UserID,
		"type":       alert.Type,
		"status":     domain.AlertActive,
		"message":    alert.Message,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if alert.PropertyID != "" {
		data["property_id"] = alert.PropertyID
	}
	if alert.ExpectedTransactionID != "" {
		data["expected_transaction_id"] = alert.ExpectedTransactionID
	}

	body, err := c.doPost(ctx, "alerts", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Alert
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created alert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("alert insert returned no rows")
	}
	return &rows[0], nil
}

func (c *Client) ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAlerts")
	defer span.End()

	path := fmt.Sprintf("alerts?user_id=eq.%s&order=created_at.desc", userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.Alert{}, nil
	}

	var rows []domain.Alert
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}
	return rows, nil
}

// DismissAlert marks an alert dismissed. The user filter in the lookup keeps
// one user from dismissing another's alerts.
func (c *Client) DismissAlert(ctx context.Context, userID, alertID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DismissAlert")
	defer span.End()

	path := fmt.Sprintf("alerts?id=eq.%s&user_id=eq.%s&limit=1", alertID, userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	if body == nil || string(body) == "[]" {
		return &domain.ErrNotFound{Resource: "alert", ID: alertID}
	}

	return c.doPatch(ctx, fmt.Sprintf("alerts?id=eq.%s&user_id=eq.%s", alertID, userID),
		map[string]any{"status": domain.AlertDismissed})
}
