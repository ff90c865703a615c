package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// URL: /reviews?page=2&limit=10
// → ParsePagination(q, PublicDefaults) → Pagination{Limit:10, Page:2, Offset:10}
// → SQL: SELECT ... LIMIT 10 OFFSET 10
// → DB returns rows + total count
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`       // items per page
	Offset     int  `json:"-"`           // SQL OFFSET value
	Page       int  `json:"page"`        // Current Page number
	Total      int  `json:"total"`       // Total matching items in database
	TotalPages int  `json:"total_pages"` // Total pages available
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Defaults controls the fallback and ceiling for the limit parameter.
type Defaults struct {
	Limit    int
	MaxLimit int
}

var (
	PublicDefaults = Defaults{Limit: 10, MaxLimit: 100}
	AdminDefaults  = Defaults{Limit: 50, MaxLimit: 200}
)

// ParsePagination parses ?limit=...&page=... safely. Careful, keys are case sensitive.
// Missing, unparsable or non-positive values fall back to page 1 and d.Limit.
func ParsePagination(q url.Values, d Defaults) Pagination {
	return New(atoiOrZero(q.Get("page")), atoiOrZero(q.Get("limit")), d)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// New builds a Pagination from page and limit values, applying d for anything out of
// range. Pages too far out for their offset to fit in an int get math.MaxInt, which
// selects no rows.
func New(page, limit int, d Defaults) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = d.Limit
	}
	if d.MaxLimit > 0 && limit > d.MaxLimit {
		limit = d.MaxLimit
	}
	if limit < 1 {
		limit = 1
	}

	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	return Pagination{Page: page, Limit: limit, Offset: offset}
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	p.TotalPages = 0
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page < p.TotalPages
}
