// Package session runs one game: it wires an engine to a scheduler and
// consumes the merged event stream on a single goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/clock"
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/engine"
	"github.com/vovakirdan/tui-blocks/internal/scheduler"
)

// Config contains everything needed to run a session.
type Config struct {
	Rules    config.Rules
	Seed     int64
	Player   string
	Recorder engine.Recorder
	Logger   *log.Logger
	Clock    clock.Clock
}

// Session owns one engine and its producers.
type Session struct {
	engine *engine.Engine
	sched  *scheduler.Scheduler
	logger *log.Logger
}

// New creates a session. Nothing runs until Run is called.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	eng := engine.New(cfg.Rules, engine.Options{
		Seed:     cfg.Seed,
		Player:   cfg.Player,
		Recorder: cfg.Recorder,
		Logger:   logger,
		Clock:    cfg.Clock,
		OnTransition: func(from, to engine.Phase) {
			logger.Debug("phase", "from", from, "to", to)
		},
	})
	sched := scheduler.New(scheduler.Config{
		Interval: eng.TickInterval,
		Debounce: cfg.Rules.Input.Debounce(),
		Clock:    cfg.Clock,
		Logger:   logger,
	})
	return &Session{engine: eng, sched: sched, logger: logger}
}

// Engine returns the session's engine. It must not be used concurrently
// with Run.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Run plays until the player quits, ctx is cancelled or the engine reports
// a broken invariant. publish receives a snapshot after the first spawn and
// after every handled event; it is called on the session goroutine and
// should not block.
//
// Run returns nil when the player quits and ctx.Err() when ctx ends first.
// Both producers have stopped by the time Run returns.
func (s *Session) Run(ctx context.Context, input <-chan core.Command, publish func(engine.Snapshot)) error {
	if publish == nil {
		publish = func(engine.Snapshot) {}
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.sched.Wait()
	}()

	if err := s.engine.Start(runCtx); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	publish(s.engine.Snapshot())
	s.sched.Start(runCtx, input)
	gen := s.engine.TimerGeneration()

	for {
		ev, err := s.sched.Next(runCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return fmt.Errorf("session: %w", err)
		}
		if ev.Kind == core.EventInput && ev.Command == core.CmdQuit {
			s.logger.Info("player quit", "score", s.engine.Score())
			return nil
		}
		if err := s.engine.Handle(runCtx, ev); err != nil {
			s.logger.Error("engine stopped", "event", ev.String(), "err", err)
			return fmt.Errorf("session: %w", err)
		}
		if g := s.engine.TimerGeneration(); g != gen {
			gen = g
			s.sched.Reschedule()
		}
		publish(s.engine.Snapshot())
	}
}
