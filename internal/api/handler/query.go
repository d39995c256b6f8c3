package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// listOptions are the listing query parameters shared by the user and dive-log
// collections: maxAmount, sortBy (default createdAt), sortOrder (asc|desc,
// default desc) and activeUsersOnly (default true).
type listOptions struct {
	ActiveUsersOnly bool
	SortBy          string
	SortDesc        bool
	MaxAmount       int
}

func parseListOptions(c echo.Context) listOptions {
	opts := listOptions{
		ActiveUsersOnly: true,
		SortBy:          "createdAt",
		SortDesc:        true,
	}

	if v := c.QueryParam("activeUsersOnly"); v != "" {
		opts.ActiveUsersOnly = v == "true"
	}
	if v := c.QueryParam("sortBy"); v != "" {
		opts.SortBy = v
	}
	if v := c.QueryParam("sortOrder"); v == "asc" {
		opts.SortDesc = false
	}
	if v := c.QueryParam("maxAmount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MaxAmount = n
		}
	}
	return opts
}
