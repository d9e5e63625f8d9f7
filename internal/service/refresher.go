package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher drops idle sessions and, when every > 0, refreshes the rest.
type Refresher struct {
	log      *zap.Logger
	sessions *Sessions
	every    time.Duration
	idleTTL  time.Duration
	tick     time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRefresher(log *zap.Logger, sessions *Sessions, every, idleTTL time.Duration) *Refresher {
	tick := every
	if tick <= 0 {
		tick = idleTTL / 2
	}
	if tick <= 0 {
		tick = time.Minute
	}
	return &Refresher{
		log:      log,
		sessions: sessions,
		every:    every,
		idleTTL:  idleTTL,
		tick:     tick,
		stopCh:   make(chan struct{}),
	}
}

func (r *Refresher) Run(ctx context.Context) {
	t := time.NewTicker(r.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-t.C:
			r.Tick(ctx)
		}
	}
}

// Tick sweeps idle sessions first so they are never refreshed.
func (r *Refresher) Tick(ctx context.Context) {
	if n := r.sessions.Sweep(r.idleTTL); n > 0 {
		r.log.Info("idle sessions dropped", zap.Int("count", n), zap.Duration("idle_ttl", r.idleTTL))
	}
	if r.every > 0 {
		r.RefreshAll(ctx)
	}
}

func (r *Refresher) RefreshAll(ctx context.Context) {
	for _, s := range r.sessions.List() {
		if ctx.Err() != nil {
			return
		}
		if _, ok := s.Selected(); !ok {
			continue
		}
		if _, err := s.Refresh(ctx); err != nil {
			r.log.Warn("session refresh failed", zap.String("session", s.ID()), zap.Error(err))
		}
	}
}

func (r *Refresher) Stop(ctx context.Context) {
	r.stopOnce.Do(func() { close(r.stopCh) })
}
