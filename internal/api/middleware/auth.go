package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

const (
	// CtxPrincipal is the context key the resolved principal is stored under.
	CtxPrincipal = "principal"
	// CtxUser is the context key for the full resolved user (the "me" paths
	// serve it directly).
	CtxUser = "currentUser"
)

// Auth resolves the bearer token to a Principal and injects it into the
// request context. Resolution outcomes: missing token (401), invalid or
// expired token (403), principal not found (404), principal disabled (403).
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "Token is invalid or expired!")
			}

			userID, _ := claims["userId"].(string)
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "User not found!")
				}
				return err
			}
			if !user.Enabled {
				return echo.NewHTTPError(http.StatusForbidden, "The account have been disabled!")
			}

			c.Set(CtxPrincipal, domain.PrincipalOf(user))
			c.Set(CtxUser, user)

			return next(c)
		}
	}
}
