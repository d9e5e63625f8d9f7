package service

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/dayanaadylkhanova/order-insights/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionShard struct {
	mu   sync.Mutex
	data map[string]*Session
}

// Sessions is a sharded registry of live report sessions.
type Sessions struct {
	log      *zap.Logger
	reporter ReportPort
	metrics  *metrics.ReportMetrics
	clock    Clock
	shards   []sessionShard
}

func NewSessions(log *zap.Logger, reporter ReportPort, shardCount int, clock Clock, m *metrics.ReportMetrics) *Sessions {
	if shardCount <= 0 {
		shardCount = 1
	}
	if clock == nil {
		clock = SystemClock
	}
	shards := make([]sessionShard, shardCount)
	for i := range shards {
		shards[i] = sessionShard{data: make(map[string]*Session, 16)}
	}
	return &Sessions{log: log, reporter: reporter, metrics: m, clock: clock, shards: shards}
}

func (r *Sessions) shardFor(id string) *sessionShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &r.shards[int(h.Sum32()%uint32(len(r.shards)))]
}

// Open registers a new session.
func (r *Sessions) Open() SessionPort { return r.Create() }

func (r *Sessions) Lookup(id string) (SessionPort, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Sessions) Close(id string) error { return r.Delete(id) }

func (r *Sessions) Create() *Session {
	s := NewSession(uuid.NewString(), r.log, r.reporter, r.metrics)
	s.touch(r.clock.Now())
	sh := r.shardFor(s.ID())
	sh.mu.Lock()
	sh.data[s.ID()] = s
	sh.mu.Unlock()
	return s
}

func (r *Sessions) Get(id string) (*Session, error) {
	sh := r.shardFor(id)
	sh.mu.Lock()
	s, ok := sh.data[id]
	sh.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.clock.Now())
	return s, nil
}

func (r *Sessions) Delete(id string) error {
	sh := r.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.data[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sh.data, id)
	return nil
}

// List returns the live sessions at the time of the call.
func (r *Sessions) List() []*Session {
	var out []*Session
	for i := range r.shards {
		sh := &r.shards[i]
		sh.mu.Lock()
		for _, s := range sh.data {
			out = append(out, s)
		}
		sh.mu.Unlock()
	}
	return out
}

func (r *Sessions) Len() int {
	n := 0
	for i := range r.shards {
		sh := &r.shards[i]
		sh.mu.Lock()
		n += len(sh.data)
		sh.mu.Unlock()
	}
	return n
}

// Sweep drops sessions nobody looked up for longer than idle and returns how
// many were removed.
func (r *Sessions) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := r.clock.Now().Add(-idle)
	n := 0
	for i := range r.shards {
		sh := &r.shards[i]
		sh.mu.Lock()
		for id, s := range sh.data {
			if s.LastSeen().Before(cutoff) {
				delete(sh.data, id)
				n++
			}
		}
		sh.mu.Unlock()
	}
	return n
}
