package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// Hand-rolled mocks for the store ports. A non-nil err field fails every
// call on that mock.

// --- PortfolioStore ---

type mockPortfolioStore struct {
	properties           []domain.Property
	loans                []domain.Loan
	loansByProperty      map[string][]domain.Loan
	valuations           map[string]*domain.Valuation
	transactions         []domain.Transaction
	propertyTransactions []domain.Transaction
	priorTransactions    []domain.Transaction
	priorCutoff          time.Time
	assets               []domain.DepreciationAsset
	globalPref           *domain.ThresholdOverride
	propertyPrefs        map[string]*domain.ThresholdOverride
	milestones           []domain.Milestone
	created              []domain.Milestone
	err                  error
}

func (m *mockPortfolioStore) ListProperties(_ context.Context, _ string) ([]domain.Property, error) {
	return m.properties, m.err
}

func (m *mockPortfolioStore) GetProperty(_ context.Context, _, propertyID string) (*domain.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.properties {
		if m.properties[i].ID == propertyID {
			return &m.properties[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "property", ID: propertyID}
}

func (m *mockPortfolioStore) ListLoans(_ context.Context, _ string) ([]domain.Loan, error) {
	return m.loans, m.err
}

func (m *mockPortfolioStore) ListLoansByProperty(_ context.Context, propertyID string) ([]domain.Loan, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.loansByProperty[propertyID], nil
}

func (m *mockPortfolioStore) GetLatestValuation(_ context.Context, propertyID string) (*domain.Valuation, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.valuations[propertyID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "valuation", ID: propertyID}
	}
	return v, nil
}

func (m *mockPortfolioStore) ListTransactions(_ context.Context, _ string, from, _ time.Time) ([]domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	// Requests starting before the cutoff get the prior-year data set.
	if !m.priorCutoff.IsZero() && from.Before(m.priorCutoff) {
		return m.priorTransactions, nil
	}
	return m.transactions, nil
}

func (m *mockPortfolioStore) ListPropertyTransactions(_ context.Context, _ string, _, _ time.Time) ([]domain.Transaction, error) {
	return m.propertyTransactions, m.err
}

func (m *mockPortfolioStore) ListDepreciationAssets(_ context.Context, _ string) ([]domain.DepreciationAsset, error) {
	return m.assets, m.err
}

func (m *mockPortfolioStore) GetThresholdPreference(_ context.Context, _ string) (*domain.ThresholdOverride, error) {
	return m.globalPref, m.err
}

func (m *mockPortfolioStore) GetPropertyThresholdOverride(_ context.Context, propertyID string) (*domain.ThresholdOverride, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.propertyPrefs[propertyID], nil
}

func (m *mockPortfolioStore) ListMilestones(_ context.Context, _ string) ([]domain.Milestone, error) {
	return m.milestones, m.err
}

func (m *mockPortfolioStore) CreateMilestone(_ context.Context, ms *domain.Milestone) (*domain.Milestone, error) {
	if m.err != nil {
		return nil, m.err
	}
	saved := *ms
	saved.ID = fmt.Sprintf("ms-%d", len(m.created)+1)
	m.created = append(m.created, saved)
	return &saved, nil
}

// --- AlertStore ---

type mockAlertStore struct {
	expected []domain.ExpectedTransaction
	active   map[string]*domain.Alert
	alerts   []domain.Alert
	created  []domain.Alert
	err      error
}

func (m *mockAlertStore) ListExpectedTransactions(_ context.Context, _ string) ([]domain.ExpectedTransaction, error) {
	return m.expected, m.err
}

func (m *mockAlertStore) ListAllActiveExpectedTransactions(_ context.Context) ([]domain.ExpectedTransaction, error) {
	return m.expected, m.err
}

func (m *mockAlertStore) GetActiveAlertForExpected(_ context.Context, expectedID string) (*domain.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.active[expectedID], nil
}

func (m *mockAlertStore) CreateAlert(_ context.Context, alert *domain.Alert) (*domain.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	saved := *alert
	saved.ID = fmt.Sprintf("alert-%d", len(m.created)+1)
	saved.Status = domain.AlertActive
	m.created = append(m.created, saved)
	return &saved, nil
}

func (m *mockAlertStore) ListAlerts(_ context.Context, _ string) ([]domain.Alert, error) {
	return m.alerts, m.err
}

func (m *mockAlertStore) DismissAlert(_ context.Context, _, alertID string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.alerts {
		if m.alerts[i].ID == alertID {
			m.alerts[i].Status = domain.AlertDismissed
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "alert", ID: alertID}
}

// --- AuthStore ---

type mockAuthStore struct {
	users     map[string]*domain.User
	byEmail   map[string]*domain.User
	creds     map[string]*domain.AuthCredential
	tokens    map[string]*domain.AuthRefreshToken
	revoked   []string
	createErr error
	err       error
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{
		users:   map[string]*domain.User{},
		byEmail: map[string]*domain.User{},
		creds:   map[string]*domain.AuthCredential{},
		tokens:  map[string]*domain.AuthRefreshToken{},
	}
}

func (m *mockAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}
	return u, nil
}

func (m *mockAuthStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byEmail[email], nil
}

func (m *mockAuthStore) CreateUser(_ context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	u := &domain.User{ID: "user-1", Email: req.Email, Name: req.Name, CreatedAt: time.Now()}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	m.creds[u.ID] = &domain.AuthCredential{UserID: u.ID, PasswordHash: passwordHash}
	return u, nil
}

func (m *mockAuthStore) GetCredentials(_ context.Context, userID string) (*domain.AuthCredential, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.creds[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: userID}
	}
	return c, nil
}

func (m *mockAuthStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.tokens[tokenHash] = &domain.AuthRefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (m *mockAuthStore) GetRefreshToken(_ context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tokens[tokenHash]
	if !ok || t.Revoked {
		return nil, nil
	}
	return t, nil
}

func (m *mockAuthStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	if t, ok := m.tokens[tokenHash]; ok {
		t.Revoked = true
	}
	m.revoked = append(m.revoked, tokenHash)
	return nil
}

func (m *mockAuthStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

// --- Notifier ---

type mockNotifier struct {
	sent []domain.Alert
	err  error
}

func (m *mockNotifier) SendAlert(_ context.Context, _ string, alert *domain.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, *alert)
	return nil
}
