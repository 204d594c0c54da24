package status

import "sync/atomic"

// Metric keys shared by the systems that write them and the views that read them
const (
	KeyTaps       = "turn.taps"
	KeyIgnored    = "turn.ignored"
	KeyMatches    = "turn.matches"
	KeyMismatches = "turn.mismatches"
	KeyActive     = "turn.active"
	KeyWins       = "game.wins"
	KeyResets     = "game.resets"
	KeyRemaining  = "board.remaining"
	KeyPending    = "scheduler.pending"
	KeyDropped    = "input.dropped"
	KeyReady      = "board.initialized"
	KeySession    = "game.session"
)

// Registry is the central metrics facade
// Systems cache pointers during init; Update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Strings.Len()
}

// Snapshot copies every metric into a plain map, keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out[key] = ptr.Load()
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out[key] = ptr.Load()
	})
	return out
}

// AtomicString is a string metric readable from any goroutine, the zero value reads ""
type AtomicString struct {
	v atomic.Pointer[string]
}

func (s *AtomicString) Store(val string) {
	s.v.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return ""
}
