// Package scheduler merges timed gravity ticks and asynchronous player input
// into one ordered stream for the engine.
//
// Two producers feed a Queue: a tick producer that sleeps for the current
// interval and an input producer that forwards commands from the keyboard.
// Exactly one consumer drains the queue.
package scheduler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/clock"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Config configures a Scheduler.
type Config struct {
	// Interval returns the wait before the next tick. It is called again
	// after every tick, so speed changes apply from the next tick on.
	Interval func() time.Duration

	// Debounce drops a repeated directional command arriving within this
	// window of the previous accepted one. Zero disables it.
	Debounce time.Duration

	Clock  clock.Clock
	Logger *log.Logger
}

// Scheduler owns the producers of one game session.
type Scheduler struct {
	cfg   Config
	queue *Queue
	rearm chan struct{}
	wg    sync.WaitGroup
}

// New creates a scheduler. A nil Interval means one tick per second.
func New(cfg Config) *Scheduler {
	if cfg.Interval == nil {
		cfg.Interval = func() time.Duration { return time.Second }
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Scheduler{cfg: cfg, queue: newQueue(cfg.Clock), rearm: make(chan struct{}, 1)}
}

// Queue returns the merged queue the consumer reads from.
func (s *Scheduler) Queue() *Queue {
	return s.queue
}

// Start launches both producers. They stop when ctx is cancelled or, for
// the input producer, when input is closed.
func (s *Scheduler) Start(ctx context.Context, input <-chan core.Command) {
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.produceTicks(ctx)
	}()
	go func() {
		defer s.wg.Done()
		s.produceInput(ctx, input)
	}()
}

// Wait blocks until both producers have returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Reschedule drops the tick being waited for and starts a new wait of
// Interval() from now. The consumer calls it when the pending deadline no
// longer matches the game, for example when a piece lands or resets its
// lock delay. It never blocks.
func (s *Scheduler) Reschedule() {
	select {
	case s.rearm <- struct{}{}:
	default:
	}
}

// Next returns the next event in delivery order.
func (s *Scheduler) Next(ctx context.Context) (core.Event, error) {
	return s.queue.Next(ctx)
}

func (s *Scheduler) produceTicks(ctx context.Context) {
	d := s.interval()
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rearm:
			d = s.interval()
			timer.Reset(d)
			continue
		case <-timer.C:
		}
		s.queue.Push(core.Event{Kind: core.EventTick, Delta: d, At: s.cfg.Clock.Now()})
		d = s.interval()
		timer.Reset(d)
	}
}

func (s *Scheduler) interval() time.Duration {
	d := s.cfg.Interval()
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

func (s *Scheduler) produceInput(ctx context.Context, input <-chan core.Command) {
	deb := debouncer{window: s.cfg.Debounce}
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-input:
			if !ok {
				return
			}
			now := s.cfg.Clock.Now()
			if !deb.allow(cmd, now) {
				s.cfg.Logger.Debug("input debounced", "cmd", cmd)
				continue
			}
			s.queue.Push(core.Event{Kind: core.EventInput, Command: cmd, At: now})
		}
	}
}

// debouncer filters key-repeat bursts of the same directional command.
type debouncer struct {
	window time.Duration
	last   core.Command
	lastAt time.Time
}

func (d *debouncer) allow(cmd core.Command, now time.Time) bool {
	if d.window > 0 && cmd.Repeatable() && cmd == d.last && now.Sub(d.lastAt) < d.window {
		return false
	}
	d.last, d.lastAt = cmd, now
	return true
}
