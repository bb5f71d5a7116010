package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/service"

	"go.uber.org/zap"
)

const testJWTSecret = "test-secret-do-not-use-in-production"

func newAuthService(store *mockAuthStore) *service.AuthService {
	return service.NewAuthService(store, testJWTSecret, 15*time.Minute, 720*time.Hour, zap.NewNop())
}

func registerTestUser(t *testing.T, svc *service.AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
		Name:     "Test Owner",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	store := newMockAuthStore()
	svc := newAuthService(store)

	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "  Owner@Example.COM ",
		Password: "correct-horse",
		Name:     "Test Owner",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Errorf("expected normalised email, got %s", user.Email)
	}
	cred := store.creds[user.ID]
	if cred == nil || cred.PasswordHash == "correct-horse" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newMockAuthStore())
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "owner@example.com",
		Password: "another-pass",
	})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	svc := newAuthService(newMockAuthStore())

	cases := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"short password", domain.RegisterRequest{Email: "a@b.com", Password: "short"}},
		{"missing email", domain.RegisterRequest{Password: "correct-horse"}},
		{"malformed email", domain.RegisterRequest{Email: "not-an-email", Password: "correct-horse"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.req)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newMockAuthStore())
	user := registerTestUser(t, svc)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.UserID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, resp.UserID)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens")
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
	if claims.Sub != user.ID {
		t.Errorf("expected sub %s, got %s", user.ID, claims.Sub)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newMockAuthStore())
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMockAuthStore())

	_, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "correct-horse",
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	store := newMockAuthStore()
	svc := newAuthService(store)
	registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// The presented token is single use.
	_, err = svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected reused token to be rejected, got %v", err)
	}
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc := newAuthService(newMockAuthStore())

	_, err := svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: "bogus"})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	store := newMockAuthStore()
	svc := newAuthService(store)
	user := registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestValidateAccessToken_RejectsGarbage(t *testing.T) {
	svc := newAuthService(newMockAuthStore())

	_, err := svc.ValidateAccessToken("not.a.jwt")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
