package params

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		defaults   Defaults
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"empty query uses public defaults", "", PublicDefaults, 1, 10, 0},
		{"empty query uses admin defaults", "", AdminDefaults, 1, 50, 0},
		{"explicit values", "page=3&limit=20", PublicDefaults, 3, 20, 40},
		{"unparsable values fall back", "page=abc&limit=xyz", PublicDefaults, 1, 10, 0},
		{"non-positive values fall back", "page=0&limit=-5", PublicDefaults, 1, 10, 0},
		{"limit is capped", "limit=1000", PublicDefaults, 1, 100, 0},
		{"admin cap is higher", "limit=150", AdminDefaults, 1, 150, 0},
		{"whitespace is trimmed", "page=%202%20&limit=%205", PublicDefaults, 2, 5, 5},
		{"offset overflow is clamped", "page=922337203685477590", PublicDefaults, 922337203685477590, 10, math.MaxInt},
		{"page at the int limit", "page=9223372036854775807&limit=200", AdminDefaults, math.MaxInt, 200, math.MaxInt},
		{"page beyond int range falls back", "page=99999999999999999999", PublicDefaults, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := ParsePagination(q, tt.defaults)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty set", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"first of several", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last page", 3, 10, 25, 3, false, true},
		{"page beyond the end", 5, 10, 3, 1, false, true},
		{"exact multiple", 2, 5, 10, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.limit, PublicDefaults)
			p.ComputeMeta(tt.total)

			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
		})
	}
}

func TestNewNormalisesInput(t *testing.T) {
	p := New(0, 0, AdminDefaults)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = New(4, 500, PublicDefaults)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 300, p.Offset)
}

func TestNewNeverProducesNegativeOffset(t *testing.T) {
	for _, limit := range []int{1, 7, 10, 100} {
		for _, page := range []int{math.MaxInt, math.MaxInt / limit, math.MaxInt/limit + 1, math.MaxInt/limit + 2} {
			p := New(page, limit, PublicDefaults)
			assert.GreaterOrEqual(t, p.Offset, 0, "page=%d limit=%d", page, limit)
		}
	}

	p := New(math.MaxInt, 10, PublicDefaults)
	p.ComputeMeta(3)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = New(3, 5, Defaults{})
	assert.Equal(t, 1, p.Limit, "a zero default limit still yields a usable page size")
	assert.Equal(t, 2, p.Offset)
}
