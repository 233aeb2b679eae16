package browse

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// Store holds the raw, unfiltered summaries. It is populated once and is
// read-only afterwards, so many sessions may share one Store.
type Store struct {
	mu      sync.RWMutex
	records []casestudy.Summary
	loaded  bool
	loadErr error
	opts    *options
}

// NewStore creates an empty, unloaded store.
func NewStore(opts ...Option) *Store {
	return &Store{opts: applyOptions(opts)}
}

// NewStoreFrom creates a store already populated with records.
func NewStoreFrom(records []casestudy.Summary, opts ...Option) *Store {
	s := NewStore(opts...)
	s.records = slices.Clone(records)
	s.loaded = true
	return s
}

// Load fetches the summaries from src. Only the first call does any work.
// A failed fetch leaves the store loaded and empty; the error is logged and
// kept for LoadErr but never returned.
func (s *Store) Load(ctx context.Context, src SummarySource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return
	}
	s.loaded = true

	start := time.Now()
	records, err := src.ListCaseStudySummaries(ctx)
	s.opts.observer.ObserveFetch(opListSummaries, time.Since(start), err)
	if err != nil {
		s.loadErr = err
		s.opts.logger.WarnContext(ctx, "case study list fetch failed, continuing with empty set", "error", err)
		return
	}
	s.records = slices.Clone(records)
	s.opts.logger.DebugContext(ctx, "case studies loaded", "count", len(s.records))
}

// Records returns the stored summaries. Callers must not modify the slice.
func (s *Store) Records() []casestudy.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Loaded reports whether Load has run.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LoadErr returns the swallowed list-fetch error, if any.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Stats returns aggregate counts over every stored record.
func (s *Store) Stats() Stats {
	return ComputeStats(s.Records())
}
