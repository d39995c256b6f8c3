package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/api/middleware"
	"github.com/scubalog/dive-log-api/internal/core/domain"
)

// dataResponse is the success envelope for resource payloads.
type dataResponse struct {
	Data any `json:"data"`
}

// messageResponse is the envelope for informational and error messages.
type messageResponse struct {
	Message string `json:"message"`
}

// ctxPrincipal extracts the principal injected by the Auth middleware. Its
// presence proves the middleware ran; a missing principal means the route was
// wired without authentication.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.CtxPrincipal).(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
	}
	return p, nil
}

// ctxUser extracts the full resolved user for the self-service paths.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, ok := c.Get(middleware.CtxUser).(*domain.User)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized!")
	}
	return u, nil
}
