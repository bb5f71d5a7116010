// Package supabase provides a client for Supabase PostgREST, used as the
// data backend for properties, transactions, alerts and auth.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to Supabase PostgREST API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	logger         *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		cfg:            cfg,
		logger:         logger,
	}
}

// doRequest executes an authenticated request to Supabase PostgREST.
func (c *Client) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		c.logger.Error("supabase: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("supabase: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// parseDate handles both timestamptz (RFC3339) and plain date columns.
func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t
	}
	t, _ = time.Parse("2006-01-02", s)
	return t
}

// --- Properties (hot read, guarded by circuit breaker + retry) ---

// propertyRow maps the properties table; purchase_date is a plain date column.
type propertyRow struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Address       string  `json:"address"`
	Suburb        string  `json:"suburb"`
	State         string  `json:"state"`
	Postcode      string  `json:"postcode"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"`
	CurrentValue  float64 `json:"current_value"`
	WeeklyRent    float64 `json:"weekly_rent"`
	Status        string  `json:"status"`
	FloodRisk     string  `json:"flood_risk"`
	BushfireRisk  string  `json:"bushfire_risk"`
	CreatedAt     string  `json:"created_at"`
}

func (r propertyRow) toDomain() domain.Property {
	return domain.Property{
		ID:            r.ID,
		UserID:        r.UserID,
		Address:       r.Address,
		Suburb:        r.Suburb,
		State:         r.State,
		Postcode:      r.Postcode,
		PurchasePrice: r.PurchasePrice,
		PurchaseDate:  parseDate(r.PurchaseDate),
		CurrentValue:  r.CurrentValue,
		WeeklyRent:    r.WeeklyRent,
		Status:        r.Status,
		FloodRisk:     r.FloodRisk,
		BushfireRisk:  r.BushfireRisk,
		CreatedAt:     parseDate(r.CreatedAt),
	}
}

// ListProperties fetches all of a user's properties.
func (c *Client) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProperties")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var properties []domain.Property

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("properties?user_id=eq.%s&order=created_at.asc", userID)
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				properties = []domain.Property{}
				return nil
			}

			var rows []propertyRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode properties: %w", err)
			}

			properties = make([]domain.Property, 0, len(rows))
			for _, r := range rows {
				properties = append(properties, r.toDomain())
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/properties", Err: err}
	}

	return properties, nil
}

// --- Transactions (hot read, guarded by circuit breaker + retry) ---

// transactionRow maps the transactions table.
type transactionRow struct {
	ID          string  `json:"id"`
	PropertyID  string  `json:"property_id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		UserID:      r.UserID,
		Date:        parseDate(r.Date),
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
}

// ListTransactions fetches a user's transactions within [from, to).
func (c *Client) ListTransactions(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var transactions []domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("transactions?user_id=eq.%s&date=gte.%s&date=lt.%s&order=date.asc",
				userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
			body, err := c.doRequest(ctx, http.MethodGet, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				transactions = []domain.Transaction{}
				return nil
			}

			var rows []transactionRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode transactions: %w", err)
			}

			transactions = make([]domain.Transaction, 0, len(rows))
			for _, r := range rows {
				transactions = append(transactions, r.toDomain())
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}

	return transactions, nil
}
