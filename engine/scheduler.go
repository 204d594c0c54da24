package engine

import (
	"container/heap"
	"time"
)

// TaskID identifies a scheduled task for cancellation
type TaskID uint64

type task struct {
	id    TaskID
	due   time.Duration
	seq   uint64
	fn    func()
	index int
}

// taskHeap orders tasks by due time, ties by scheduling order
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a delay queue on a logical clock
// The frame driver advances the clock; nothing here reads wall time, so tests step it directly
// Not safe for concurrent use, owned by the game loop
type Scheduler struct {
	now    time.Duration
	seq    uint64
	nextID TaskID
	tasks  taskHeap
	byID   map[TaskID]*task
}

// NewScheduler creates an empty scheduler at logical time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[TaskID]*task),
	}
}

// Now returns the logical time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, delay after the current logical time
// Negative delays run on the next Advance
func (s *Scheduler) After(delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:  s.nextID,
		due: s.now + delay,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.tasks, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending task, reports false if it already ran or was cancelled
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.tasks, t.index)
	delete(s.byID, id)
	return true
}

// CancelAll drops every pending task and returns how many were dropped
func (s *Scheduler) CancelAll() int {
	n := len(s.tasks)
	s.tasks = s.tasks[:0]
	clear(s.byID)
	return n
}

// Pending returns the number of scheduled tasks
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by dt and runs every task that came due, in due order
// Tasks scheduled by a running task fire in the same call when already due
// Returns the number of tasks run
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for len(s.tasks) > 0 && s.tasks[0].due <= s.now {
		t := heap.Pop(&s.tasks).(*task)
		delete(s.byID, t.id)
		t.fn()
		ran++
	}
	return ran
}
