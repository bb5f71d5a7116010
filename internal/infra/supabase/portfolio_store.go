package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// ============================================================
// PortfolioStore implementation — properties, loans, valuations
// ============================================================

func (c *Client) GetProperty(ctx context.Context, userID, propertyID string) (*domain.Property, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProperty")
	defer span.End()

	path := fmt.Sprintf("properties?user_id=eq.%s&id=eq.%s&limit=1", userID, propertyID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "property", ID: propertyID}
	}

	var rows []propertyRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "property", ID: propertyID}
	}
	p := rows[0].toDomain()
	return &p, nil
}

func (c *Client) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListLoans")
	defer span.End()

	// Loans carry no user_id column; join through the owning property.
	path := fmt.Sprintf("loans?select=*,properties!inner(user_id)&properties.user_id=eq.%s", userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.Loan{}, nil
	}

	var rows []domain.Loan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}
	return rows, nil
}

func (c *Client) ListLoansByProperty(ctx context.Context, propertyID string) ([]domain.Loan, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListLoansByProperty")
	defer span.End()

	path := fmt.Sprintf("loans?property_id=eq.%s&order=created_at.asc", propertyID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.Loan{}, nil
	}

	var rows []domain.Loan
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}
	return rows, nil
}

func (c *Client) GetLatestValuation(ctx context.Context, propertyID string) (*domain.Valuation, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetLatestValuation")
	defer span.End()

	path := fmt.Sprintf("valuations?property_id=eq.%s&order=valued_at.desc&limit=1", propertyID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "valuation", ID: propertyID}
	}

	var rows []domain.Valuation
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode valuations: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "valuation", ID: propertyID}
	}
	return &rows[0], nil
}

func (c *Client) ListPropertyTransactions(ctx context.Context, propertyID string, from, to time.Time) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPropertyTransactions")
	defer span.End()

	path := fmt.Sprintf("transactions?property_id=eq.%s&date=gte.%s&date=lt.%s&order=date.asc",
		propertyID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.Transaction{}, nil
	}

	var rows []transactionRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		transactions = append(transactions, r.toDomain())
	}
	return transactions, nil
}

func (c *Client) ListDepreciationAssets(ctx context.Context, propertyID string) ([]domain.DepreciationAsset, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListDepreciationAssets")
	defer span.End()

	path := fmt.Sprintf("depreciation_assets?property_id=eq.%s&order=name.asc", propertyID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return []domain.DepreciationAsset{}, nil
	}

	var rows []domain.DepreciationAsset
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode depreciation_assets: %w", err)
	}
	return rows, nil
}
