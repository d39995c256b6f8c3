package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// stubUserRepo implements ports.UserRepository over a fixed map; only FindByID
// matters to the middleware.
type stubUserRepo struct {
	byID map[string]*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(context.Context, []string) (map[string]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) List(context.Context, ports.ListUsersFilter) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Update(context.Context, *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Delete(context.Context, string) error { return nil }

func signedToken(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, repo ports.UserRepository, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuth_ValidToken(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleAdmin, Enabled: true},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", "u1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", repo)(func(c echo.Context) error {
		called = true
		p, ok := c.Get(CtxPrincipal).(domain.Principal)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.ID != "u1" || p.Role != domain.RoleAdmin {
			t.Fatalf("wrong principal: %+v", p)
		}
		if u, ok := c.Get(CtxUser).(*domain.User); !ok || u.ID != "u1" {
			t.Fatalf("full user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingToken(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{}}

	for _, header := range []string{"", "Bearer", "Token abc"} {
		rec, called := runAuth(t, repo, header)
		if called {
			t.Fatalf("next called with header %q", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{}}

	rec, called := runAuth(t, repo, "Bearer not-a-token")
	if called {
		t.Fatalf("next called with an invalid token")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuth_WrongSigningKey(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleBasicUser, Enabled: true},
	}}

	rec, called := runAuth(t, repo, "Bearer "+signedToken(t, "other-secret", "u1"))
	if called {
		t.Fatalf("next called with a forged token")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuth_PrincipalNotFound(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{}}

	rec, called := runAuth(t, repo, "Bearer "+signedToken(t, "secret", "ghost"))
	if called {
		t.Fatalf("next called for a deleted principal")
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuth_DisabledPrincipal(t *testing.T) {
	repo := &stubUserRepo{byID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleBasicUser, Enabled: false},
	}}

	rec, called := runAuth(t, repo, "Bearer "+signedToken(t, "secret", "u1"))
	if called {
		t.Fatalf("next called for a disabled principal")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
