package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/core/domain"
)

func runRequireSuperAdmin(t *testing.T, principal any) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(CtxPrincipal, principal)
	}

	called := false
	handler := RequireSuperAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireSuperAdmin_NoPrincipal(t *testing.T) {
	rec, called := runRequireSuperAdmin(t, nil)
	if called {
		t.Fatalf("next called without a principal")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSuperAdmin_WrongRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleBasicUser, domain.RoleAdmin} {
		rec, called := runRequireSuperAdmin(t, domain.Principal{ID: "u1", Role: role, Enabled: true})
		if called {
			t.Fatalf("next called for role %s", role)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", role, rec.Code)
		}
	}
}

func TestRequireSuperAdmin_Allowed(t *testing.T) {
	rec, called := runRequireSuperAdmin(t, domain.Principal{ID: "s1", Role: domain.RoleSuperAdmin, Enabled: true})
	if !called {
		t.Fatalf("next not called for a super admin")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
