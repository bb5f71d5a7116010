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
// Milestone preferences and history
// ============================================================

// thresholdRow maps the override columns shared by user_preferences and
// property_threshold_overrides. Null columns stay nil and inherit.
type thresholdRow struct {
	LVRThresholds     []float64 `json:"lvr_thresholds"`
	EquityThresholds  []float64 `json:"equity_thresholds"`
	MilestonesEnabled *bool     `json:"milestones_enabled"`
}

func (r thresholdRow) toDomain() *domain.ThresholdOverride {
	return &domain.ThresholdOverride{
		LVRThresholds:    r.LVRThresholds,
		EquityThresholds: r.EquityThresholds,
		Enabled:          r.MilestonesEnabled,
	}
}

// GetThresholdPreference returns the user-level override, or nil when the
// user has never customized thresholds.
func (c *Client) GetThresholdPreference(ctx context.Context, userID string) (*domain.ThresholdOverride, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetThresholdPreference")
	defer span.End()

	path := fmt.Sprintf("user_preferences?user_id=eq.%s&limit=1", userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil // no preference row is not an error
	}

	var rows []thresholdRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode user_preferences: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

// GetPropertyThresholdOverride returns the per-property override, or nil.
func (c *Client) GetPropertyThresholdOverride(ctx context.Context, propertyID string) (*domain.ThresholdOverride, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetPropertyThresholdOverride")
	defer span.End()

	path := fmt.Sprintf("property_threshold_overrides?property_id=eq.%s&limit=1", propertyID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, nil
	}

	var rows []thresholdRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode property_threshold_overrides: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

func (c *Client) ListMilestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListMilestones")
	defer span.End()

	path := fmt.Sprintf("milestones?user_id=eq.%s&order=detected_at.desc", userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.Milestone{}, nil
	}

	var rows []domain.Milestone
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode milestones: %w", err)
	}
	return rows, nil
}

func (c *Client) CreateMilestone(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateMilestone")
	defer span.End()

	data := map[string]any{
		"id":          uuid.New().String(),
		"user_id":     m.UserID,
		"type":        string(m.Type),
		"threshold":   m.Threshold,
		"value":       m.Value,
		"detected_at": m.DetectedAt.UTC().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "milestones", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Milestone
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode created milestone: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("milestone insert returned no rows")
	}
	return &rows[0], nil
}
