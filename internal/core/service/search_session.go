package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/portal-api/internal/api/metrics"
	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// SessionState is the lifecycle state of one search input surface.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateDebouncing SessionState = "debouncing"
	StateInFlight   SessionState = "in_flight"
	StateSettled    SessionState = "settled"
	StateFailed     SessionState = "failed"
)

// DefaultDebounce is the reference debounce window for keystrokes.
const DefaultDebounce = 300 * time.Millisecond

// SearchUpdate is delivered to the session's sink when a dispatch settles
// or fails. Seq identifies the keystroke that produced it.
type SearchUpdate struct {
	Seq   uint64
	Query string
	State SessionState
	Hits  []domain.SearchHit
	Err   error
}

// SearchSession drives debounced, cancellable search for a single input
// surface. Every keystroke restarts the debounce window; only the query
// alive when the window elapses is dispatched. Each dispatch carries a
// monotonically increasing sequence number, and a completion whose number is
// no longer the latest issued is discarded, so out-of-order responses can
// never surface a superseded query's results.
type SearchSession struct {
	searcher ports.SearchService
	debounce time.Duration
	notify   func(SearchUpdate)
	logger   zerolog.Logger

	mu     sync.Mutex
	seq    uint64
	state  SessionState
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// NewSearchSession creates a session in the Idle state. notify may be nil
// when the caller polls State instead of subscribing; debounce <= 0 selects
// DefaultDebounce.
func NewSearchSession(searcher ports.SearchService, debounce time.Duration, notify func(SearchUpdate), logger zerolog.Logger) *SearchSession {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SearchSession{
		searcher: searcher,
		debounce: debounce,
		notify:   notify,
		logger:   logger,
		state:    StateIdle,
	}
}

// OnQueryChange records a keystroke: it supersedes any pending or in-flight
// dispatch and restarts the debounce window.
func (s *SearchSession) OnQueryChange(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.seq++
	seq := s.seq

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state = StateDebouncing
	s.timer = time.AfterFunc(s.debounce, func() { s.dispatch(seq, query) })
}

// State returns the session's current lifecycle state.
func (s *SearchSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops the pending timer, cancels any in-flight dispatch, and
// guarantees no continuation applies results afterwards. Idempotent.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SearchSession) dispatch(seq uint64, query string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}

	q := strings.TrimSpace(query)
	if len([]rune(q)) < domain.MinQueryLength {
		// Defined as an empty query: settle without touching adapters.
		s.state = StateSettled
		s.deliver(SearchUpdate{Seq: seq, Query: query, State: StateSettled, Hits: []domain.SearchHit{}})
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateInFlight
	s.mu.Unlock()

	hits, err := s.searcher.Search(ctx, q)
	cancel()

	s.mu.Lock()
	if s.closed || seq != s.seq {
		// A newer keystroke superseded this dispatch while it was in flight.
		metrics.SearchStaleDiscardsTotal.Inc()
		s.logger.Debug().Uint64("seq", seq).Str("query", q).Msg("stale search response discarded")
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel = nil
	}

	update := SearchUpdate{Seq: seq, Query: query}
	if err != nil {
		s.state = StateFailed
		update.State = StateFailed
		update.Err = err
	} else {
		s.state = StateSettled
		update.State = StateSettled
		update.Hits = hits
	}
	s.deliver(update)
	s.mu.Unlock()
}

// deliver runs with s.mu held so that the seq check and the delivery are one
// atomic step: a superseded dispatch can never notify after a newer one.
// The sink must therefore not call back into the session.
func (s *SearchSession) deliver(u SearchUpdate) {
	if s.notify != nil {
		s.notify(u)
	}
}
