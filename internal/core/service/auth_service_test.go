package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/pkg/password"
)

func newAuthService() (*AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	return NewAuthService(users, "jwt-secret", "pepper", time.Hour, discardLogger), users
}

func seedCredentialed(users *stubUserRepo, id, plain string, enabled bool) *domain.User {
	u := seedUser(users, id, domain.RoleBasicUser, enabled)
	u.PasswordHash = password.Hash(plain, "pepper")
	return users.add(u)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	wantMessage(t, err, domain.ErrUserNotFound, "User not found!")
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	svc, users := newAuthService()
	seedCredentialed(users, "u1", "correct-password", false)

	_, err := svc.Login(context.Background(), "u1@example.com", "correct-password")
	wantMessage(t, err, domain.ErrAccountDisabled, "The account have been disabled!")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users := newAuthService()
	seedCredentialed(users, "u1", "correct-password", true)

	_, err := svc.Login(context.Background(), "u1@example.com", "wrong-password")
	wantMessage(t, err, domain.ErrInvalidCredentials, "Invalid credentials!")
}

func TestAuthService_Login_IssuesValidToken(t *testing.T) {
	svc, users := newAuthService()
	u := seedCredentialed(users, "u1", "correct-password", true)

	token, err := svc.Login(context.Background(), "u1@example.com", "correct-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("jwt-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["userId"] != u.ID {
		t.Fatalf("expected userId claim %q, got %v", u.ID, claims["userId"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		t.Fatalf("exp claim missing or already past: %v", claims["exp"])
	}
}
