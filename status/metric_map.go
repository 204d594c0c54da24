package status

import (
	"slices"
	"sync"
)

// MetricMap holds one kind of metric keyed by name
// Get allocates on first use; callers keep the pointer and update it without locking
type MetricMap[T any] struct {
	mu    sync.Mutex
	items map[string]*T
	keys  []string // sorted
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	i, _ := slices.BinarySearch(m.keys, key)
	m.keys = slices.Insert(m.keys, i, key)
	return ptr
}

// Range calls fn for every metric in key order
// The key set is copied first, so fn may register new metrics
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.Lock()
	keys := slices.Clone(m.keys)
	ptrs := make([]*T, len(keys))
	for i, k := range keys {
		ptrs[i] = m.items[k]
	}
	m.mu.Unlock()

	for i, k := range keys {
		fn(k, ptrs[i])
	}
}

// Len returns the number of registered metrics
func (m *MetricMap[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}
