package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/clock"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// TieWindow is how close a tick and an input must arrive to count as
// simultaneous.
const TieWindow = 2 * time.Millisecond

// Queue is the merged event queue between the producers and the single
// consumer. Events leave in arrival order, except that an input arriving
// within TieWindow of a still pending tick is delivered before that tick.
// Sequence numbers are stamped on delivery.
type Queue struct {
	mu      sync.Mutex
	pending []core.Event
	seq     uint64
	clock   clock.Clock
	notify  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return newQueue(clock.New())
}

func newQueue(c clock.Clock) *Queue {
	return &Queue{clock: c, notify: make(chan struct{}, 1)}
}

// Push enqueues ev. Events without an arrival time are stamped with the
// current time.
func (q *Queue) Push(ev core.Event) {
	q.mu.Lock()
	if ev.At.IsZero() {
		ev.At = q.clock.Now()
	}
	i := len(q.pending)
	if ev.Kind == core.EventInput {
		for i > 0 {
			prev := q.pending[i-1]
			if prev.Kind != core.EventTick || ev.At.Sub(prev.At) > TieWindow {
				break
			}
			i--
		}
	}
	q.pending = append(q.pending, core.Event{})
	copy(q.pending[i+1:], q.pending[i:])
	q.pending[i] = ev
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryNext pops the next event without blocking.
func (q *Queue) TryNext() (core.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return core.Event{}, false
	}
	ev := q.pending[0]
	q.pending = q.pending[1:]
	q.seq++
	ev.Seq = q.seq
	return ev, true
}

// Next blocks until an event is available or ctx is done.
func (q *Queue) Next(ctx context.Context) (core.Event, error) {
	for {
		if ev, ok := q.TryNext(); ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return core.Event{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
