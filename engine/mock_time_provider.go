package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a hand-driven clock for stepping the frame driver in tests
// Time only moves through Advance or Set
type MockTimeProvider struct {
	start   time.Time
	elapsed atomic.Int64 // nanoseconds past start
}

// NewMockTimeProvider creates a clock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.start.Add(time.Duration(m.elapsed.Load()))
}

// Advance moves the clock forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	return m.start.Add(time.Duration(m.elapsed.Add(int64(d))))
}

// Set places the clock at offset past start, earlier offsets step it backwards
func (m *MockTimeProvider) Set(offset time.Duration) {
	m.elapsed.Store(int64(offset))
}
