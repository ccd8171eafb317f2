// Package engine implements the game state machine. An Engine exclusively
// owns the board, the bag and the active piece; it consumes one event at a
// time and is not safe for concurrent use except for TickInterval.
package engine

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/bag"
	"github.com/vovakirdan/tui-blocks/internal/board"
	"github.com/vovakirdan/tui-blocks/internal/clock"
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/piece"
)

// Recorder persists finished games.
type Recorder interface {
	Save(ctx context.Context, rec core.ScoreRecord) error
}

// Options carries the collaborators of an Engine. All fields are optional.
type Options struct {
	Seed     int64
	Player   string
	Recorder Recorder
	Logger   *log.Logger
	Clock    clock.Clock

	// OnTransition, when set, observes every phase change including the
	// transient ones.
	OnTransition func(from, to Phase)
}

// Engine is the single owner of the game state.
type Engine struct {
	rules    config.Rules
	opts     Options
	logger   *log.Logger
	clock    clock.Clock
	recorder Recorder

	board  *board.Board
	bag    *bag.Generator
	active piece.Piece
	phase  Phase
	games  int64

	score     uint64
	level     uint
	lines     uint
	lastClear int

	// now is the time of the event being handled. The lock delay is
	// measured from lockStart, the moment the piece last grounded or reset.
	now        time.Time
	grounded   bool
	lockStart  time.Time
	lockResets int
	pausedAt   time.Time
	timerGen   uint64

	record  *core.ScoreRecord
	saveErr error
	handled uint64

	// nextTick is read by the tick producer from another goroutine.
	nextTick atomic.Int64
}

// New creates an engine for rules. Call Start before feeding events.
func New(rules config.Rules, opts Options) *Engine {
	e := &Engine{
		rules:    rules,
		opts:     opts,
		logger:   opts.Logger,
		clock:    opts.Clock,
		recorder: opts.Recorder,
		board:    board.New(rules.Board.Width, rules.Board.Height, rules.Board.HiddenRows),
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.clock == nil {
		e.clock = clock.New()
	}
	if e.opts.Player == "" {
		e.opts.Player = "player"
	}
	e.resetState()
	return e
}

func (e *Engine) resetState() {
	e.board.Reset()
	e.bag = bag.New(e.opts.Seed + e.games)
	e.games++
	e.phase = Spawning
	e.score, e.lines, e.lastClear = 0, 0, 0
	e.level = e.rules.Gravity.StartLevel
	if e.level == 0 {
		e.level = 1
	}
	e.record, e.saveErr = nil, nil
	e.clearLock()
	e.publishInterval()
}

// Start spawns the first piece.
func (e *Engine) Start(ctx context.Context) error {
	e.now = e.clock.Now()
	defer e.publishInterval()
	e.logger.Info("game started", "player", e.opts.Player, "level", e.level)
	return e.advance(ctx)
}

// Reset discards the current game and starts a new one.
func (e *Engine) Reset(ctx context.Context) error {
	e.resetState()
	return e.Start(ctx)
}

// Board exposes the playfield for setup in tests and tools. Mutating it
// while events are being handled breaks the engine's invariants.
func (e *Engine) Board() *board.Board { return e.board }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the current score.
func (e *Engine) Score() uint64 { return e.score }

// Level returns the current level.
func (e *Engine) Level() uint { return e.level }

// Lines returns the number of cleared lines.
func (e *Engine) Lines() uint { return e.lines }

// Active returns the falling piece. It is meaningless outside Falling and Paused.
func (e *Engine) Active() piece.Piece { return e.active }

// Record returns the score record of a finished game, or nil.
func (e *Engine) Record() *core.ScoreRecord { return e.record }

// DropInterval returns the gravity interval for the current level.
func (e *Engine) DropInterval() time.Duration {
	return e.rules.Gravity.Interval(e.level)
}

// TickInterval returns how long the tick producer should wait before the
// next tick: the gravity interval, shortened to the remaining lock delay
// while the piece is grounded. Safe to call from any goroutine.
func (e *Engine) TickInterval() time.Duration {
	return time.Duration(e.nextTick.Load())
}

// TimerGeneration changes whenever a pending tick deadline became wrong: the
// piece grounded, left the ground or reset its lock delay, a new piece
// spawned, or the game was paused or resumed. Callers re-arm the tick
// producer from TickInterval when they see a new generation.
func (e *Engine) TimerGeneration() uint64 {
	return e.timerGen
}

func (e *Engine) publishInterval() {
	d := e.DropInterval()
	if e.phase == Falling && e.grounded {
		if rest := e.rules.Lock.LockDelay() - e.lockElapsed(); rest < d {
			d = max(rest, time.Millisecond)
		}
	}
	e.nextTick.Store(int64(d))
}

func (e *Engine) lockElapsed() time.Duration {
	if !e.grounded {
		return 0
	}
	return e.now.Sub(e.lockStart)
}

func (e *Engine) eventTime(ev core.Event) time.Time {
	if ev.At.IsZero() {
		return e.clock.Now()
	}
	return ev.At
}

// Handle applies one event. Rejected moves and events that do not apply to
// the current phase are ignored. The only errors are *InvariantError values,
// which mean the game state can no longer be trusted.
func (e *Engine) Handle(ctx context.Context, ev core.Event) error {
	e.handled++
	e.now = e.eventTime(ev)
	defer e.publishInterval()

	switch e.phase {
	case GameOver:
		if ev.Kind == core.EventInput && ev.Command == core.CmdRestart {
			return e.Reset(ctx)
		}
		return nil
	case Paused:
		if ev.Kind == core.EventInput && ev.Command == core.CmdPause {
			e.resume()
		}
		return nil
	case Falling:
	default:
		return &InvariantError{Op: "handle", Err: errors.New("event observed transient phase " + e.phase.String())}
	}

	switch ev.Kind {
	case core.EventTick:
		e.onTick()
	case core.EventInput:
		e.onInput(ev.Command)
	}
	return e.advance(ctx)
}

func (e *Engine) setPhase(p Phase) {
	if p == e.phase {
		return
	}
	from := e.phase
	e.phase = p
	if e.opts.OnTransition != nil {
		e.opts.OnTransition(from, p)
	}
}

// advance resolves transient phases until the engine rests in Falling,
// Paused or GameOver.
func (e *Engine) advance(ctx context.Context) error {
	for e.phase.transient() {
		switch e.phase {
		case Spawning:
			e.spawn(ctx)
		case Locking:
			if err := e.board.Lock(e.active); err != nil {
				return &InvariantError{Op: "lock", Err: err}
			}
			e.logger.Debug("piece locked", "piece", e.active.String())
			e.setPhase(Clearing)
		case Clearing:
			e.applyClear(e.board.ClearFullRows())
			e.setPhase(Spawning)
		}
	}
	if e.phase == Falling && !e.board.IsValid(e.active) {
		return &InvariantError{Op: "move", Err: errors.New("active piece overlaps the board: " + e.active.String())}
	}
	return nil
}

func (e *Engine) spawn(ctx context.Context) {
	kind := e.bag.Next()
	x, y := e.board.SpawnPosition()
	p := piece.New(kind, x, y)
	e.clearLock()

	if e.board.SpawnAreaBlocked(p) {
		e.gameOver(ctx)
		return
	}
	e.active = p
	e.setPhase(Falling)
	e.timerGen++
	e.updateGrounded(false)
}

func (e *Engine) gameOver(ctx context.Context) {
	e.setPhase(GameOver)
	rec := core.ScoreRecord{
		Name:  e.opts.Player,
		Score: e.score,
		Level: e.level,
		Lines: e.lines,
		At:    e.clock.Now(),
	}
	e.record = &rec
	e.logger.Info("game over", "player", rec.Name, "score", rec.Score, "level", rec.Level, "lines", rec.Lines)

	if e.recorder == nil {
		return
	}
	if err := e.recorder.Save(ctx, rec); err != nil {
		e.saveErr = err
		e.logger.Error("failed to save score", "err", err)
	}
}

func (e *Engine) clearLock() {
	e.grounded = false
	e.lockStart = time.Time{}
	e.lockResets = 0
}

// updateGrounded recomputes whether the active piece rests on something.
// The lock delay starts when the piece grounds. A move or rotation of a
// grounded piece restarts it until the per-piece reset budget is spent.
func (e *Engine) updateGrounded(moved bool) {
	wasGrounded := e.grounded
	e.grounded = !e.board.IsValid(e.active.Moved(0, 1))

	switch {
	case e.grounded && !wasGrounded:
		e.lockStart = e.now
	case moved && wasGrounded && e.lockResets < e.rules.Lock.MaxResets:
		e.lockResets++
		e.lockStart = e.now
	case !e.grounded && wasGrounded:
		// back under gravity
	default:
		return
	}
	e.timerGen++
}

// resetsSpent reports whether the piece has used its whole reset budget.
func (e *Engine) resetsSpent() bool {
	return e.rules.Lock.MaxResets > 0 && e.lockResets >= e.rules.Lock.MaxResets
}

func (e *Engine) onTick() {
	if !e.grounded {
		e.active = e.active.Moved(0, 1)
		e.updateGrounded(false)
		return
	}
	if e.lockElapsed() >= e.rules.Lock.LockDelay() || e.resetsSpent() {
		e.setPhase(Locking)
	}
}

func (e *Engine) pause() {
	e.pausedAt = e.now
	e.setPhase(Paused)
	e.timerGen++
}

// resume shifts the lock delay by the time spent paused.
func (e *Engine) resume() {
	if e.grounded {
		e.lockStart = e.lockStart.Add(e.now.Sub(e.pausedAt))
	}
	e.setPhase(Falling)
	e.timerGen++
}

func (e *Engine) onInput(cmd core.Command) {
	switch cmd {
	case core.CmdMoveLeft:
		e.try(e.active.Moved(-1, 0))
	case core.CmdMoveRight:
		e.try(e.active.Moved(1, 0))
	case core.CmdRotateCW:
		e.rotate(e.active.Rotation.CW())
	case core.CmdRotateCCW:
		e.rotate(e.active.Rotation.CCW())
	case core.CmdSoftDrop:
		if e.try(e.active.Moved(0, 1)) {
			e.score += softDropPoints
		}
	case core.CmdHardDrop:
		d := e.board.DropDistance(e.active)
		e.active = e.active.Moved(0, d)
		e.score += uint64(d) * hardDropPoints
		e.setPhase(Locking)
	case core.CmdPause:
		e.pause()
	}
}

// try commits cand if the board accepts it.
func (e *Engine) try(cand piece.Piece) bool {
	if !e.board.IsValid(cand) {
		return false
	}
	e.active = cand
	e.updateGrounded(true)
	return true
}

// rotate tries the in-place rotation and then each wall kick in order.
func (e *Engine) rotate(to piece.Rotation) bool {
	for _, kick := range piece.Kicks(e.active.Kind, e.active.Rotation, to) {
		if e.try(e.active.Rotated(to, kick)) {
			return true
		}
	}
	return false
}
