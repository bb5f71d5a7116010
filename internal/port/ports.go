// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// Notifier delivers alert notifications to a user out-of-band.
type Notifier interface {
	SendAlert(ctx context.Context, email string, alert *domain.Alert) error
}

// PortfolioStore defines all data operations for properties, loans,
// valuations and transactions. Implemented by the Supabase adapter (or any
// other persistence layer).
type PortfolioStore interface {
	// Properties
	ListProperties(ctx context.Context, userID string) ([]domain.Property, error)
	GetProperty(ctx context.Context, userID, propertyID string) (*domain.Property, error)

	// Loans & valuations
	ListLoans(ctx context.Context, userID string) ([]domain.Loan, error)
	ListLoansByProperty(ctx context.Context, propertyID string) ([]domain.Loan, error)
	GetLatestValuation(ctx context.Context, propertyID string) (*domain.Valuation, error)

	// Transactions
	ListTransactions(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error)
	ListPropertyTransactions(ctx context.Context, propertyID string, from, to time.Time) ([]domain.Transaction, error)

	// Depreciation assets
	ListDepreciationAssets(ctx context.Context, propertyID string) ([]domain.DepreciationAsset, error)

	// Milestone preferences and history
	GetThresholdPreference(ctx context.Context, userID string) (*domain.ThresholdOverride, error)
	GetPropertyThresholdOverride(ctx context.Context, propertyID string) (*domain.ThresholdOverride, error)
	ListMilestones(ctx context.Context, userID string) ([]domain.Milestone, error)
	CreateMilestone(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error)
}

// AlertStore defines data operations for expected transactions and alerts.
type AlertStore interface {
	ListExpectedTransactions(ctx context.Context, userID string) ([]domain.ExpectedTransaction, error)
	ListAllActiveExpectedTransactions(ctx context.Context) ([]domain.ExpectedTransaction, error)
	GetActiveAlertForExpected(ctx context.Context, expectedTransactionID string) (*domain.Alert, error)
	CreateAlert(ctx context.Context, alert *domain.Alert) (*domain.Alert, error)
	ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error)
	DismissAlert(ctx context.Context, userID, alertID string) error
}

// AuthStore defines all data operations for the authentication system.
type AuthStore interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error)
	GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error)

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}
