// Package listquery models the filter and pagination state behind the admin
// list views and its mapping onto the backend search endpoints.
//
// A Query is a value; every transition returns a new Query so callers can
// compare before/after states and tests can assert the transition laws
// directly. The date and status dimensions are toggle-exclusive single-select:
// re-applying the active value clears the dimension, applying a different
// value replaces it. Any change to search or filter state moves the query
// back to page 1 so a narrower result set can never leave the view on a page
// that no longer exists.
package listquery

import (
	"net/url"
	"strconv"
)

// DateFilter selects one backend date bucket. The zero value means no date
// filtering.
type DateFilter string

const (
	DateAny       DateFilter = ""
	DateThisWeek  DateFilter = "thisWeek"
	DateThisMonth DateFilter = "thisMonth"
	DateThisYear  DateFilter = "thisYear"
)

// Valid reports whether f is a date bucket the backend understands.
func (f DateFilter) Valid() bool {
	switch f {
	case DateAny, DateThisWeek, DateThisMonth, DateThisYear:
		return true
	}
	return false
}

// StatusFilter narrows a list to a single order status. Only the two statuses
// surfaced as list filters are valid here; the full status enumeration lives
// with the order model. The zero value means no status filtering.
type StatusFilter string

const (
	StatusAny       StatusFilter = ""
	StatusPending   StatusFilter = "Pending"
	StatusCompleted StatusFilter = "Completed"
)

// Valid reports whether f is a status the backend accepts as a list filter.
func (f StatusFilter) Valid() bool {
	switch f {
	case StatusAny, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Query is the complete input state of one paginated list view.
type Query struct {
	SearchTerm   string
	Page         int
	PageSize     int
	DateFilter   DateFilter
	StatusFilter StatusFilter
}

// New returns an unfiltered query positioned on the first page.
func New(pageSize int) Query {
	return Query{Page: 1, PageSize: pageSize}
}

// WithSearch replaces the search term and resets to the first page.
func (q Query) WithSearch(term string) Query {
	q.SearchTerm = term
	q.Page = 1
	return q
}

// ToggleDate applies f as the single active date bucket, or clears the
// dimension when f is already active. Either way the query moves to page 1.
func (q Query) ToggleDate(f DateFilter) Query {
	if q.DateFilter == f {
		q.DateFilter = DateAny
	} else {
		q.DateFilter = f
	}
	q.Page = 1
	return q
}

// ToggleStatus applies f as the single active status filter, or clears the
// dimension when f is already active. Either way the query moves to page 1.
func (q Query) ToggleStatus(f StatusFilter) Query {
	if q.StatusFilter == f {
		q.StatusFilter = StatusAny
	} else {
		q.StatusFilter = f
	}
	q.Page = 1
	return q
}

// ClearFilters drops both filter dimensions and resets to the first page.
// The search term is kept.
func (q Query) ClearFilters() Query {
	q.DateFilter = DateAny
	q.StatusFilter = StatusAny
	q.Page = 1
	return q
}

// WithPage moves to page n, leaving every other dimension untouched. Bounds
// checking against the known page count is the caller's job; the query itself
// only knows its own state.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}

// Filtered reports whether either filter dimension is active.
func (q Query) Filtered() bool {
	return q.DateFilter != DateAny || q.StatusFilter != StatusAny
}

// Values encodes the dimensions shared by every search endpoint. Endpoints
// that support the filter dimensions add them on top of this.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("searchTerm", q.SearchTerm)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.PageSize))
	return v
}

// PageCount derives the number of pages needed for totalCount items. It is
// never below 1 so an empty result still has a well-formed page range.
func PageCount(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 1
	}
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
