package event

import (
	"sync/atomic"

	"github.com/lixenwraith/flipcard/constant"
)

// EventQueue is a bounded MPSC ring of player input
// Producers are the terminal poller and the websocket reader, the consumer is the game loop
//
// A full ring rejects the incoming event instead of overwriting a queued one:
// a queued reset or tap is never lost to a later event, the rejection is counted
type EventQueue struct {
	events    [constant.EventQueueSize]GameEvent
	published [constant.EventQueueSize]atomic.Bool // set once the slot is written
	head      atomic.Uint64                        // next slot to consume
	tail      atomic.Uint64                        // next slot to reserve
	dropped   *atomic.Int64
}

// NewEventQueue creates an empty queue that adds every rejected push to dropped
// A nil counter keeps the count private, read it through Dropped
func NewEventQueue(dropped *atomic.Int64) *EventQueue {
	if dropped == nil {
		dropped = new(atomic.Int64)
	}
	return &EventQueue{dropped: dropped}
}

// Push reserves a slot and publishes ev, reports false when the ring is full
func (eq *EventQueue) Push(ev GameEvent) bool {
	for {
		// head before tail: a stale head only overstates occupancy
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail-head >= constant.EventQueueSize {
			eq.dropped.Add(1)
			return false
		}
		if !eq.tail.CompareAndSwap(tail, tail+1) {
			continue
		}

		idx := tail & constant.EventBufferMask
		eq.events[idx] = ev
		eq.published[idx].Store(true)
		return true
	}
}

// Consume returns the published events in push order and frees their slots
// Stops at the first slot whose producer has not finished writing
func (eq *EventQueue) Consume() []GameEvent {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail == head {
		return nil
	}

	result := make([]GameEvent, 0, tail-head)
	for i := head; i < tail; i++ {
		idx := i & constant.EventBufferMask
		if !eq.published[idx].Load() {
			break
		}
		result = append(result, eq.events[idx])
		eq.events[idx] = GameEvent{}
		eq.published[idx].Store(false)
	}
	if len(result) == 0 {
		return nil
	}

	// Slots are cleared before head moves past them
	eq.head.Store(head + uint64(len(result)))
	return result
}

// Len returns the number of reserved slots, including ones still being written
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Dropped returns how many pushes the queue has rejected
func (eq *EventQueue) Dropped() int64 {
	return eq.dropped.Load()
}
