package params

import (
	"campusflow/core/constants"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(c echo.Context) *QueryParams {
	page := atoiDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}

	size := atoiDefault(c.QueryParam("limit"), 0)
	if size == 0 {
		size = atoiDefault(c.QueryParam("page_size"), constants.DefaultPageSize)
	}
	if size < 1 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   size,
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
