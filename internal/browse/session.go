package browse

import (
	"context"
	"sync"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// Session is one user's browsing state over a shared Store: the active
// Criteria plus the displayed detail. Every criterion change recomputes the
// view; every change except SetPage/NextPage/PrevPage resets the page to 1.
type Session struct {
	mu       sync.Mutex
	store    *Store
	criteria Criteria
	hydrator *Hydrator
}

// NewSession creates a session with default criteria over store.
func NewSession(store *Store, details DetailSource, opts ...Option) *Session {
	return &Session{
		store:    store,
		criteria: DefaultCriteria(),
		hydrator: NewHydrator(details, opts...),
	}
}

// View returns the current page without changing anything.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputeLocked()
}

// Criteria returns a copy of the active criteria.
func (s *Session) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}

// SetKeyword replaces the keyword filter.
func (s *Session) SetKeyword(keyword string) View {
	return s.mutate(func(c *Criteria) {
		c.Keyword = keyword
	})
}

// ToggleRegion adds r to the region filter, or removes it if present.
func (s *Session) ToggleRegion(r Region) View {
	return s.mutate(func(c *Criteria) {
		c.Regions = toggle(c.Regions, r)
	})
}

// ToggleQuality adds q to the quality filter, or removes it if present.
func (s *Session) ToggleQuality(q casestudy.DataQuality) View {
	return s.mutate(func(c *Criteria) {
		c.Qualities = toggle(c.Qualities, q)
	})
}

// SetSort selects the ordering. Unknown keys select SortByDate.
func (s *Session) SetSort(key SortKey) View {
	if !key.Valid() {
		key = SortByDate
	}
	return s.mutate(func(c *Criteria) {
		c.Sort = key
	})
}

// ApplyFilters replaces keyword, regions, qualities and sort in one step.
func (s *Session) ApplyFilters(keyword string, regions []Region, qualities []casestudy.DataQuality, key SortKey) View {
	if !key.Valid() {
		key = SortByDate
	}
	return s.mutate(func(c *Criteria) {
		next := Criteria{
			Keyword:   keyword,
			Regions:   regions,
			Qualities: qualities,
			Sort:      key,
		}.Clone()
		*c = next
	})
}

// ResetFilters restores the default criteria.
func (s *Session) ResetFilters() View {
	return s.mutate(func(c *Criteria) {
		*c = DefaultCriteria()
	})
}

// SetPage jumps to page, clamped to the available pages.
func (s *Session) SetPage(page int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Page = page
	return s.recomputeLocked()
}

// NextPage advances one page; it is a no-op on the last page.
func (s *Session) NextPage() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.recomputeLocked()
	if v.Page >= v.TotalPages {
		return v
	}
	s.criteria.Page = v.Page + 1
	return s.recomputeLocked()
}

// PrevPage goes back one page; it is a no-op on page 1.
func (s *Session) PrevPage() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.recomputeLocked()
	if v.Page <= 1 {
		return v
	}
	s.criteria.Page = v.Page - 1
	return s.recomputeLocked()
}

// Select hydrates the detail for id. See Hydrator.Select.
func (s *Session) Select(ctx context.Context, id string) <-chan Outcome {
	return s.hydrator.Select(ctx, id)
}

// ClearSelection dismisses the displayed detail.
func (s *Session) ClearSelection() {
	s.hydrator.Clear()
}

// Detail returns the displayed detail state.
func (s *Session) Detail() DetailState {
	return s.hydrator.State()
}

// Stats returns aggregate counts over the whole store.
func (s *Session) Stats() Stats {
	return s.store.Stats()
}

// Close stops any in-flight detail fetch.
func (s *Session) Close() {
	s.hydrator.Close()
}

func (s *Session) mutate(fn func(c *Criteria)) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.criteria)
	s.criteria.Page = 1
	return s.recomputeLocked()
}

// recomputeLocked keeps criteria.Page clamped to the current page count.
func (s *Session) recomputeLocked() View {
	v := Recompute(s.store.Records(), s.criteria)
	s.criteria.Page = v.Page
	return v
}
