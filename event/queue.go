package event

import (
	"sync/atomic"

	"github.com/lixenwraith/planetfall/parameter"
)

// EventQueue is a lock-free MPSC ring buffer for engine commands
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input poller, websocket readers)
//   - Consume: Single consumer (simulation loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest commands overwritten when full
type EventQueue struct {
	events    [parameter.CommandQueueSize]GameEvent
	published [parameter.CommandQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                           // Read index
	tail      atomic.Uint64                           // Write index
	dropped   atomic.Uint64                           // Overwritten before consumption
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds event using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (eq *EventQueue) Push(event GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.CommandBufferMask

			eq.events[idx] = event
			eq.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := eq.head.Load()
			if nextTail-currentHead > parameter.CommandQueueSize {
				if eq.head.CompareAndSwap(currentHead, nextTail-parameter.CommandQueueSize) {
					eq.dropped.Add(1)
				}
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
// Single-consumer design (simulation loop). Checks published flags for safety
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.CommandQueueSize {
			maxAvailable = parameter.CommandQueueSize
			currentHead = currentTail - parameter.CommandQueueSize
		}

		result := make([]GameEvent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.CommandBufferMask

			if !eq.published[idx].Load() {
				break // Writer incomplete, picked up next tick
			}

			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if eq.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending event count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.CommandQueueSize {
		return parameter.CommandQueueSize
	}
	return diff
}

// Dropped returns the number of commands lost to overflow
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
