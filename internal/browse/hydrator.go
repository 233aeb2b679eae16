package browse

import (
	"context"
	"sync"
	"time"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// DetailStatus is the lifecycle state of the displayed detail.
type DetailStatus string

const (
	DetailNone    DetailStatus = "none"
	DetailLoading DetailStatus = "loading"
	DetailLoaded  DetailStatus = "loaded"
)

// DetailState is a snapshot of the currently displayed detail.
type DetailState struct {
	Status DetailStatus      `json:"status"`
	ID     string            `json:"id,omitempty"`
	Detail *casestudy.Detail `json:"detail,omitempty"`
	// Error carries the reason the latest fetch failed. It is cleared by
	// the next Select or Clear.
	Error string `json:"error,omitempty"`
}

// Outcome reports how a single Select resolved.
type Outcome struct {
	Token uint64
	ID    string
	// Applied is true when the fetched detail became the displayed one.
	Applied bool
	// Discarded is true when a newer Select or a Clear superseded the request.
	Discarded bool
	Err       error
}

// Hydrator fetches full case studies on demand and tracks which one is
// displayed. Every Select takes a fresh token; a response is applied only if
// its token is still the latest, so results land in request order no matter
// the order they complete in.
type Hydrator struct {
	src  DetailSource
	opts *options

	mu      sync.Mutex
	seq     uint64
	state   DetailState
	settled DetailState
	cancel  context.CancelFunc

	wg sync.WaitGroup
}

// NewHydrator creates a hydrator in the none state.
func NewHydrator(src DetailSource, opts ...Option) *Hydrator {
	return &Hydrator{
		src:     src,
		opts:    applyOptions(opts),
		state:   DetailState{Status: DetailNone},
		settled: DetailState{Status: DetailNone},
	}
}

// Select starts fetching id and moves to loading(id). Any request still in
// flight is cancelled and its result will be discarded. The returned channel
// receives exactly one Outcome and is then closed.
func (h *Hydrator) Select(ctx context.Context, id string) <-chan Outcome {
	done := make(chan Outcome, 1)

	h.mu.Lock()
	h.seq++
	token := h.seq
	if h.cancel != nil {
		h.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.state = DetailState{Status: DetailLoading, ID: id}
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		defer cancel()

		start := time.Now()
		detail, err := h.src.GetCaseStudyDetail(fetchCtx, id)
		if err == nil && detail == nil {
			err = casestudy.ErrCaseStudyNotFound
		}
		h.opts.observer.ObserveFetch(opGetDetail, time.Since(start), err)

		done <- h.resolve(ctx, token, id, detail, err)
		close(done)
	}()

	return done
}

func (h *Hydrator) resolve(ctx context.Context, token uint64, id string, detail *casestudy.Detail, err error) Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := Outcome{Token: token, ID: id, Err: err}
	if token != h.seq {
		out.Discarded = true
		h.opts.observer.StaleDetailDiscarded()
		h.opts.logger.DebugContext(ctx, "discarding stale case study detail", "id", id, "token", token, "latest", h.seq)
		return out
	}
	h.cancel = nil

	if err != nil {
		h.opts.logger.WarnContext(ctx, "case study detail fetch failed", "id", id, "error", err)
		h.state = h.settled
		h.state.Error = err.Error()
		return out
	}

	h.state = DetailState{Status: DetailLoaded, ID: id, Detail: detail}
	h.settled = h.state
	out.Applied = true
	return out
}

// Clear dismisses the detail. In-flight requests are cancelled and their
// late results discarded.
func (h *Hydrator) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.state = DetailState{Status: DetailNone}
	h.settled = h.state
}

// State returns the current detail snapshot.
func (h *Hydrator) State() DetailState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Close cancels any in-flight fetch and waits for fetch goroutines to exit.
func (h *Hydrator) Close() {
	h.Clear()
	h.wg.Wait()
}
