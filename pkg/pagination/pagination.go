package pagination

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromValues reads _count and _offset. Missing or invalid values fall back
// to the defaults; _count is capped at MaxLimit.
func FromValues(v url.Values) Params {
	limit, _ := strconv.Atoi(v.Get("_count"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(v.Get("_offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// FromContext extracts pagination parameters from the query string, and
// from the form body of a POST _search.
func FromContext(c echo.Context) Params {
	v := c.QueryParams()
	if c.Request().Method == "POST" {
		if form, err := c.FormParams(); err == nil {
			v = form
		}
	}
	return FromValues(v)
}

// Window returns the slice bounds of the page within total items.
func (p Params) Window(total int) (start, end int) {
	start = p.Offset
	if start > total {
		start = total
	}
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Offset > 0
}
