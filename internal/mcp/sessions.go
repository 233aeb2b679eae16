package mcp

import (
	"sync"
	"time"

	"github.com/rpggio/policyatlas/internal/browse"
	"github.com/rpggio/policyatlas/internal/metrics"
)

type sessionEntry struct {
	session  *browse.Session
	lastUsed time.Time
}

// sessionRegistry maps MCP session IDs to browse sessions. Sessions idle
// for longer than ttl are closed on the next access.
type sessionRegistry struct {
	mu         sync.Mutex
	ttl        time.Duration
	newSession func() *browse.Session
	entries    map[string]*sessionEntry
	metrics    *metrics.Metrics
	now        func() time.Time
}

func newSessionRegistry(ttl time.Duration, newSession func() *browse.Session, m *metrics.Metrics) *sessionRegistry {
	return &sessionRegistry{
		ttl:        ttl,
		newSession: newSession,
		entries:    make(map[string]*sessionEntry),
		metrics:    m,
		now:        time.Now,
	}
}

func (r *sessionRegistry) get(id string) *browse.Session {
	r.mu.Lock()
	now := r.now()
	evicted := r.sweepLocked(now, id)

	e, ok := r.entries[id]
	if !ok {
		e = &sessionEntry{session: r.newSession()}
		r.entries[id] = e
	}
	e.lastUsed = now
	r.metrics.SetActiveSessions(len(r.entries))
	r.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	return e.session
}

// sweepLocked removes idle entries other than keep and returns them for
// closing outside the lock.
func (r *sessionRegistry) sweepLocked(now time.Time, keep string) []*browse.Session {
	var evicted []*browse.Session
	for id, e := range r.entries {
		if id != keep && now.Sub(e.lastUsed) > r.ttl {
			evicted = append(evicted, e.session)
			delete(r.entries, id)
		}
	}
	return evicted
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	all := make([]*browse.Session, 0, len(r.entries))
	for id, e := range r.entries {
		all = append(all, e.session)
		delete(r.entries, id)
	}
	r.metrics.SetActiveSessions(0)
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
