// Package console holds the headless controllers behind the admin views:
// paginated list sessions, entity detail sessions, the dashboard, and the
// sign-in flow. Each session owns its in-memory state exclusively; there is
// no shared state between sessions.
//
// A list session keeps exactly one logical request outstanding. Every fetch
// is tagged with a monotonically increasing sequence number and a completed
// fetch whose tag is no longer current is discarded, so a slow stale response
// can never overwrite the result of a newer query.
package console

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopora/admin_console/internal/listquery"
)

// ErrSuperseded reports that a fetch completed after a newer one was issued
// and its result was discarded. It is informational; callers normally ignore
// it because the newer request owns the view now.
var ErrSuperseded = errors.New("console: result superseded by a newer request")

// fetchFunc loads one page for q, returning the items, the total item count
// (negative when the endpoint does not report one) and the total page count.
type fetchFunc[T any] func(ctx context.Context, q listquery.Query) (items []T, total, pages int, err error)

// ListSession is the shared engine behind the orders and users list views.
type ListSession[T any] struct {
	mu      sync.Mutex
	query   listquery.Query
	items   []T
	total   int
	pages   int
	loading bool
	seq     uint64
	fetch   fetchFunc[T]
	log     zerolog.Logger
}

func newListSession[T any](q listquery.Query, fetch fetchFunc[T], log zerolog.Logger) *ListSession[T] {
	return &ListSession[T]{query: q, pages: 1, fetch: fetch, log: log}
}

// refresh issues the fetch for q. State is only replaced when this fetch is
// still the newest by the time it completes; either way the loading flag is
// owned by the newest fetch, so it is always cleared when that one finishes.
func (s *ListSession[T]) refresh(ctx context.Context, q listquery.Query) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.query = q
	s.loading = true
	s.mu.Unlock()

	items, total, pages, err := s.fetch(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.log.Debug().Uint64("seq", seq).Uint64("latest", s.seq).Msg("discarding stale list response")
		return ErrSuperseded
	}
	s.loading = false
	if err != nil {
		return err
	}
	if pages < 1 {
		pages = 1
	}
	s.items = items
	s.total = total
	s.pages = pages
	return nil
}

// Refresh re-issues the current query unchanged.
func (s *ListSession[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// Search replaces the search term and reloads from page 1.
func (s *ListSession[T]) Search(ctx context.Context, term string) error {
	s.mu.Lock()
	q := s.query.WithSearch(term)
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// ToggleDate toggles the date bucket and reloads from page 1.
func (s *ListSession[T]) ToggleDate(ctx context.Context, f listquery.DateFilter) error {
	s.mu.Lock()
	q := s.query.ToggleDate(f)
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// ToggleStatus toggles the status filter and reloads from page 1.
func (s *ListSession[T]) ToggleStatus(ctx context.Context, f listquery.StatusFilter) error {
	s.mu.Lock()
	q := s.query.ToggleStatus(f)
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// ClearFilters drops both filter dimensions, keeps the search term, and
// reloads from page 1.
func (s *ListSession[T]) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	q := s.query.ClearFilters()
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// GoToPage navigates to page n. Requests outside [1, TotalPages] are a
// no-op: no state change and no network call, mirroring disabled pagination
// controls.
func (s *ListSession[T]) GoToPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 || n > s.pages {
		s.mu.Unlock()
		return nil
	}
	q := s.query.WithPage(n)
	s.mu.Unlock()
	return s.refresh(ctx, q)
}

// Items returns a copy of the currently rendered page.
func (s *ListSession[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Query returns the current query state.
func (s *ListSession[T]) Query() listquery.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// TotalCount returns the total number of matching items, or a negative value
// when the backend does not report one.
func (s *ListSession[T]) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// TotalPages returns the known page count, at least 1.
func (s *ListSession[T]) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

// Loading reports whether the newest fetch is still in flight.
func (s *ListSession[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// find returns the first item matching the predicate.
func (s *ListSession[T]) find(match func(T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// reconcile applies fn to every item matching the predicate, in place. It is
// called only after the backend confirmed the corresponding mutation.
func (s *ListSession[T]) reconcile(match func(T) bool, fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if match(item) {
			s.items[i] = fn(item)
		}
	}
}

// remove drops every item matching the predicate and reports whether any was
// removed.
func (s *ListSession[T]) remove(match func(T) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if match(item) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed
}
