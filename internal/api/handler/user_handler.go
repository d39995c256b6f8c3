package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new user account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	in := ports.CreateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	}
	if req.RoleName != nil {
		in.RoleName = *req.RoleName
		in.RoleSet = true
	}

	user, err := h.service.Create(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: user})
}

// List returns the users the actor may see.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        activeUsersOnly  query     bool    false  "Exclude disabled accounts (default true)"
// @Param        maxAmount        query     int     false  "Truncate the result after sorting"
// @Param        sortBy           query     string  false  "Sort field (default createdAt)"
// @Param        sortOrder        query     string  false  "asc or desc (default desc)"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	opts := parseListOptions(c)
	users, err := h.service.List(c.Request().Context(), actor, ports.ListUsersInput{
		ActiveUsersOnly: opts.ActiveUsersOnly,
		SortBy:          opts.SortBy,
		SortDesc:        opts.SortDesc,
		MaxAmount:       opts.MaxAmount,
	})
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, dataResponse{Data: users})
}

// Get returns one user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// Update modifies a user's fullName and enabled flag.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	user, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		FullName: req.FullName,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// Delete removes a user account. The user's dive logs are kept with their
// owner reference nulled.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("User with id %q deleted!", id)})
}

// Activate enables a user account. Idempotent: enabling an already enabled
// account reports that, with a 200 either way.
//
// @Summary      Enable a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/users/activate/{id} [patch]
func (h *UserHandler) Activate(c echo.Context) error {
	return h.setEnabled(c, true)
}

// Deactivate disables a user account.
//
// @Summary      Disable a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/users/deactivate/{id} [patch]
func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setEnabled(c, false)
}

func (h *UserHandler) setEnabled(c echo.Context, enabled bool) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	already, err := h.service.SetEnabled(c.Request().Context(), actor, id, enabled)
	if err != nil {
		return err
	}

	verb := "enabled"
	if !enabled {
		verb = "disabled"
	}
	if already {
		return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("User with id %q is already %s!", id, verb)})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("User with id %q %s!", id, verb)})
}

// Me returns the authenticated user's own profile, any role.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /api/v1/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// UpdateMe updates the authenticated user's own email, fullName or password.
// A body carrying none of them changes nothing and says so.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateMeRequest  true  "Fields to update"
// @Success      200   {object}  dataResponse
// @Router       /api/v1/me/update [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	user, changed, err := h.service.UpdateSelf(c.Request().Context(), actor, ports.UpdateSelfInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if !changed {
		return c.JSON(http.StatusOK, messageResponse{Message: "Nothing changed!"})
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}
