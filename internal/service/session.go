package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/dayanaadylkhanova/order-insights/pkg/metrics"
	"go.uber.org/zap"
)

type appliedState struct {
	sel    entity.RangeSelector // last accepted selection
	hasSel bool
	gen    uint64
	snap   *entity.Snapshot
	err    string
}

// Session is a caller-owned report view. A result is applied only if its
// generation is still the latest issued one.
type Session struct {
	id       string
	log      *zap.Logger
	reporter ReportPort
	metrics  *metrics.ReportMetrics
	lastSeen atomic.Int64 // unix nanos

	mu     sync.Mutex
	issued uint64
	state  appliedState
}

func NewSession(id string, log *zap.Logger, reporter ReportPort, m *metrics.ReportMetrics) *Session {
	return &Session{id: id, log: log, reporter: reporter, metrics: m}
}

func (s *Session) ID() string { return s.id }

// Select requests a report for sel. A rejected selection leaves the accepted
// one in place.
func (s *Session) Select(ctx context.Context, sel entity.RangeSelector) (entity.SessionState, error) {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	snap, err := s.reporter.GetReport(ctx, sel)
	if !s.apply(gen, sel, snap, err) {
		s.metrics.IncStaleDiscarded()
		s.log.Debug("stale report discarded",
			zap.String("session", s.id),
			zap.Uint64("generation", gen),
		)
	}
	return s.State(), err
}

// Refresh re-runs the accepted selection, "today" if there is none.
func (s *Session) Refresh(ctx context.Context) (entity.SessionState, error) {
	sel, ok := s.Selected()
	if !ok {
		sel = entity.RangeSelector{ID: entity.RangeToday}
	}
	return s.Select(ctx, sel)
}

// Selected returns the last selection that produced a snapshot.
func (s *Session) Selected() (entity.RangeSelector, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.sel, s.state.hasSel
}

func (s *Session) apply(gen uint64, sel entity.RangeSelector, snap entity.Snapshot, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.issued {
		return false
	}
	next := s.state
	next.gen = gen
	if err != nil {
		next.err = err.Error()
	} else {
		c := snap.Clone()
		next.sel, next.hasSel = sel, true
		next.snap = &c
		next.err = ""
	}
	s.state = next
	return true
}

func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	st, issued := s.state, s.issued
	s.mu.Unlock()

	out := entity.SessionState{
		ID:         s.id,
		Selector:   st.sel,
		Generation: st.gen,
		Loading:    st.gen != issued,
		Error:      st.err,
	}
	if st.snap != nil {
		c := st.snap.Clone()
		out.Snapshot = &c
	}
	out.Stale = out.Loading || st.err != "" ||
		(out.Snapshot != nil && (out.Snapshot.Partial || out.Snapshot.FetchFailed))
	return out
}

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// LastSeen is the last time a caller looked the session up.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }
