package engine

import (
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/piece"
)

// Snapshot is an immutable view of the game for renderers. Coordinates are
// relative to the visible area: hidden buffer rows are cut off.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]core.Color // [y][x], ColorDefault when empty

	Active      []core.Point
	ActiveKind  piece.Kind
	ActiveColor core.Color
	Ghost       []core.Point
	Next        []piece.Kind

	Score     uint64
	Level     uint
	Lines     uint
	LastClear int
	Interval  int64 // gravity interval in milliseconds

	Phase    Phase
	Paused   bool
	GameOver bool
	Record   *core.ScoreRecord
	SaveErr  error

	// Seq counts handled events, so consumers can drop stale snapshots.
	Seq uint64
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	hidden := e.board.Hidden()
	s := Snapshot{
		Width:     e.board.Width(),
		Height:    e.board.VisibleHeight(),
		Score:     e.score,
		Level:     e.level,
		Lines:     e.lines,
		LastClear: e.lastClear,
		Interval:  e.DropInterval().Milliseconds(),
		Phase:     e.phase,
		Paused:    e.phase == Paused,
		GameOver:  e.phase == GameOver,
		SaveErr:   e.saveErr,
		Seq:       e.handled,
	}

	rows := e.board.Rows()
	s.Cells = make([][]core.Color, s.Height)
	for y := range s.Cells {
		s.Cells[y] = make([]core.Color, s.Width)
		for x, c := range rows[y+hidden] {
			s.Cells[y][x] = c.Color
		}
	}

	if e.phase == Falling || e.phase == Paused {
		s.ActiveKind = e.active.Kind
		s.ActiveColor = e.active.Color()
		s.Active = visible(e.active.Cells(), hidden)
		ghost := e.active.Moved(0, e.board.DropDistance(e.active))
		s.Ghost = visible(ghost.Cells(), hidden)
	}
	if e.rules.Preview > 0 && e.phase != GameOver {
		s.Next = e.bag.Peek(e.rules.Preview)
	}
	if e.record != nil {
		rec := *e.record
		s.Record = &rec
	}
	return s
}

func visible(cells [4]core.Point, hidden int) []core.Point {
	out := make([]core.Point, 0, len(cells))
	for _, c := range cells {
		if c.Y >= hidden {
			out = append(out, core.Point{X: c.X, Y: c.Y - hidden})
		}
	}
	return out
}
