package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/handler"
	"github.com/ItsMattG/property-tracker-sub009/internal/infra/observability"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"go.uber.org/zap"
)

// stubAuthStore is an in-memory port.AuthStore for router round-trips.
type stubAuthStore struct {
	users   map[string]*domain.User
	byEmail map[string]*domain.User
	creds   map[string]*domain.AuthCredential
	tokens  map[string]*domain.AuthRefreshToken
}

func newStubAuthStore() *stubAuthStore {
	return &stubAuthStore{
		users:   map[string]*domain.User{},
		byEmail: map[string]*domain.User{},
		creds:   map[string]*domain.AuthCredential{},
		tokens:  map[string]*domain.AuthRefreshToken{},
	}
}

func (s *stubAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}
	return u, nil
}

func (s *stubAuthStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.byEmail[email], nil
}

func (s *stubAuthStore) CreateUser(_ context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	u := &domain.User{ID: "user-1", Email: req.Email, Name: req.Name, CreatedAt: time.Now()}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u
	s.creds[u.ID] = &domain.AuthCredential{UserID: u.ID, PasswordHash: passwordHash}
	return u, nil
}

func (s *stubAuthStore) GetCredentials(_ context.Context, userID string) (*domain.AuthCredential, error) {
	c, ok := s.creds[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: userID}
	}
	return c, nil
}

func (s *stubAuthStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	s.tokens[tokenHash] = &domain.AuthRefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (s *stubAuthStore) GetRefreshToken(_ context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	t, ok := s.tokens[tokenHash]
	if !ok || t.Revoked {
		return nil, nil
	}
	return t, nil
}

func (s *stubAuthStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	if t, ok := s.tokens[tokenHash]; ok {
		t.Revoked = true
	}
	return nil
}

func (s *stubAuthStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	for _, t := range s.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	authSvc := service.NewAuthService(newStubAuthStore(), "router-test-secret", 15*time.Minute, time.Hour, logger)
	svcs := handler.Services{
		Auth:       authSvc,
		Compliance: service.NewComplianceService(logger),
	}
	return handler.NewRouter(svcs, "cron-token", observability.NewMetrics(), logger)
}

func loginForToken(t *testing.T, router http.Handler) string {
	t.Helper()

	register := `{"email":"owner@example.com","password":"correct-horse","name":"Owner"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString(register))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	login := `{"email":"owner@example.com","password":"correct-horse"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(login))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/compliance/rent-increase/VIC", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRentIncreaseRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := loginForToken(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/compliance/rent-increase/VIC", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var rule domain.RentIncreaseRule
	if err := json.Unmarshal(rec.Body.Bytes(), &rule); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rule.State != "VIC" || rule.NoticeDays != 60 {
		t.Errorf("unexpected rule %+v", rule)
	}
}

func TestRolePermissionsRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := loginForToken(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/entities/roles/accountant/permissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var perms domain.EntityPermissions
	if err := json.Unmarshal(rec.Body.Bytes(), &perms); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !perms.CanExportReports || perms.CanEditProperties {
		t.Errorf("unexpected accountant permissions %+v", perms)
	}
}

func TestScanRequiresCronToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without cron token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/scan", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong cron token, got %d", rec.Code)
	}
}

func TestSMSFStatusRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := loginForToken(t, router)

	body := `{"member_age":70,"pension_balance":1000000,"drawdown_to_date":30000,"months_elapsed":6,"in_pension_phase":true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/compliance/smsf/status", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var status domain.SMSFStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.MinimumDrawdown != 50000 {
		t.Errorf("expected minimum drawdown 50000, got %f", status.MinimumDrawdown)
	}
	if status.DrawdownStatus != domain.ComplianceOK {
		t.Errorf("expected drawdown on track, got %s", status.DrawdownStatus)
	}
}
