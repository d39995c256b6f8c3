package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/api/metrics"
	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// errorResponse is the envelope the login path uses for failures. The rest of
// the API answers errors with {"message": ...}; login keeps {"error": ...}.
type errorResponse struct {
	Error string `json:"error"`
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  messageResponse
// @Router       /api/v1/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()

		status := http.StatusInternalServerError
		msg := "Login failed!"
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			status, msg = http.StatusNotFound, err.Error()
		case errors.Is(err, domain.ErrAccountDisabled):
			status, msg = http.StatusForbidden, err.Error()
		case errors.Is(err, domain.ErrInvalidCredentials):
			status, msg = http.StatusUnauthorized, err.Error()
		}
		return c.JSON(status, errorResponse{Error: msg})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
