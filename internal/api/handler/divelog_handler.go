package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scubalog/dive-log-api/internal/api/metrics"
	"github.com/scubalog/dive-log-api/internal/core/domain"
	"github.com/scubalog/dive-log-api/internal/core/ports"
)

// DiveLogHandler handles HTTP requests for dive logs.
type DiveLogHandler struct {
	service ports.DiveLogService
}

func NewDiveLogHandler(service ports.DiveLogService) *DiveLogHandler {
	return &DiveLogHandler{service: service}
}

// timestampLayouts are the accepted formats for the tsStart/tsEnd query
// parameters, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create records a new dive log for the actor, or for another user when
// addUser is set and the actor is allowed to delegate.
//
// @Summary      Create a dive log
// @Tags         logbooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      diveLogRequest  true  "Dive details"
// @Success      201   {object}  dataResponse
// @Failure      403   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/v1/logbooks [post]
func (h *DiveLogHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req diveLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity,
			"Please enter a valid tank material from the list: Aluminium, Steel")
	}

	log, err := h.service.Create(c.Request().Context(), actor, ports.CreateLogInput{
		LogFields: req.fields(),
		ForUserID: req.AddUser,
	})
	if err != nil {
		return err
	}

	metrics.DiveLogsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: log})
}

// List returns the dive logs the actor may see. The tsStart/tsEnd bounds are
// validated here, before any query runs.
//
// @Summary      List dive logs
// @Tags         logbooks
// @Produce      json
// @Security     BearerAuth
// @Param        activeUsersOnly  query     bool    false  "Exclude logs of disabled or deleted owners (default true)"
// @Param        maxAmount        query     int     false  "Truncate the result after sorting"
// @Param        sortBy           query     string  false  "Sort field (default createdAt)"
// @Param        sortOrder        query     string  false  "asc or desc (default desc)"
// @Param        tsStart          query     string  false  "Inclusive lower bound on startTime"
// @Param        tsEnd            query     string  false  "Inclusive upper bound on startTime"
// @Success      200  {object}  dataResponse
// @Failure      422  {object}  messageResponse
// @Router       /api/v1/logbooks [get]
func (h *DiveLogHandler) List(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	opts := parseListOptions(c)
	in := ports.ListLogsInput{
		ActiveUsersOnly: opts.ActiveUsersOnly,
		SortBy:          opts.SortBy,
		SortDesc:        opts.SortDesc,
		MaxAmount:       opts.MaxAmount,
	}

	if v := c.QueryParam("tsStart"); v != "" {
		t, ok := parseTimestamp(v)
		if !ok {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				"Invalid tsStart format. Please provide a valid datetime string.")
		}
		in.StartFrom = &t
	}
	if v := c.QueryParam("tsEnd"); v != "" {
		t, ok := parseTimestamp(v)
		if !ok {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				"Invalid tsEnd format. Please provide a valid datetime string.")
		}
		in.StartTo = &t
	}

	logs, err := h.service.List(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.DiveLog{}
	}
	return c.JSON(http.StatusOK, dataResponse{Data: logs})
}

// Get returns one dive log by id.
//
// @Summary      Get a dive log
// @Tags         logbooks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Dive log id"
// @Success      200  {object}  dataResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/logbooks/{id} [get]
func (h *DiveLogHandler) Get(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	log, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: log})
}

// Update replaces a dive log's measurements. The payload is complete: optional
// fields absent from the body are cleared.
//
// @Summary      Update a dive log
// @Tags         logbooks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Dive log id"
// @Param        body  body      diveLogRequest  true  "Dive details"
// @Success      200   {object}  dataResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /api/v1/logbooks/{id} [patch]
func (h *DiveLogHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req diveLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity,
			"Please enter a valid tank material from the list: Aluminium, Steel")
	}

	log, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: log})
}

// Delete removes a dive log.
//
// @Summary      Delete a dive log
// @Tags         logbooks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Dive log id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v1/logbooks/{id} [delete]
func (h *DiveLogHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Dive log with id %q deleted!", id)})
}
