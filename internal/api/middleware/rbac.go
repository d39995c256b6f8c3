package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/core/domain"
)

// RequireRole gates a route group to principals holding exactly one of the
// given roles. Runs after Auth.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(CtxPrincipal).(domain.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
			}
			if _, ok := allowed[p.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden!")
			}
			return next(c)
		}
	}
}

// RequireSuperAdmin gates a route to super admins.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleSuperAdmin)
}
