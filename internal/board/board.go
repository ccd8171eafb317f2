// Package board holds the playfield grid and the pure rules that operate on
// it: collision checks, locking a piece and clearing full rows.
//
// Row 0 is the top of the hidden spawn buffer and y grows downward. Only the
// bottom VisibleHeight rows are drawn.
package board

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/piece"
)

// Standard playfield dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
	DefaultHidden = 2
)

// ErrInvalidLock is returned when asked to lock a piece that collides or
// lies out of bounds. The engine treats it as a programming defect.
var ErrInvalidLock = errors.New("board: cannot lock piece at invalid position")

// Cell is one grid position. The zero value is empty.
type Cell struct {
	Color core.Color
}

// Empty reports whether nothing is locked in the cell.
func (c Cell) Empty() bool {
	return c.Color == core.ColorDefault
}

// Board is the playfield grid.
type Board struct {
	width  int
	height int // visible rows
	hidden int
	rows   [][]Cell
}

// New creates an empty board with width columns, height visible rows and
// hidden extra rows above them.
func New(width, height, hidden int) *Board {
	b := &Board{width: width, height: height, hidden: hidden}
	b.rows = make([][]Cell, height+hidden)
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the total number of rows including the hidden buffer.
func (b *Board) Height() int { return b.height + b.hidden }

// VisibleHeight returns the number of drawn rows.
func (b *Board) VisibleHeight() int { return b.height }

// Hidden returns the number of rows in the spawn buffer.
func (b *Board) Hidden() int { return b.hidden }

// inBounds reports whether (x, y) is inside the grid including the buffer.
func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < len(b.rows)
}

// At returns the cell at (x, y). Out-of-bounds positions read as empty.
func (b *Board) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// Set overwrites a single cell. It is used to set up positions and ignores
// out-of-bounds coordinates.
func (b *Board) Set(x, y int, c Cell) {
	if b.inBounds(x, y) {
		b.rows[y][x] = c
	}
}

// IsValid reports whether every cell of p lies inside the grid and on an
// empty cell. The top of the hidden buffer acts as a ceiling.
func (b *Board) IsValid(p piece.Piece) bool {
	for _, c := range p.Cells() {
		if !b.inBounds(c.X, c.Y) || !b.rows[c.Y][c.X].Empty() {
			return false
		}
	}
	return true
}

// Lock writes p's colour into the cells it covers.
func (b *Board) Lock(p piece.Piece) error {
	if !b.IsValid(p) {
		return fmt.Errorf("%w: %s", ErrInvalidLock, p)
	}
	color := p.Color()
	for _, c := range p.Cells() {
		b.rows[c.Y][c.X] = Cell{Color: color}
	}
	return nil
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.rows[y] {
		if c.Empty() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row in one bottom-up pass and returns how
// many were removed. Surviving rows keep their relative order and settle at
// the bottom; fresh empty rows fill the top.
func (b *Board) ClearFullRows() int {
	write := len(b.rows) - 1
	for read := len(b.rows) - 1; read >= 0; read-- {
		if b.rowFull(read) {
			continue
		}
		if write != read {
			copy(b.rows[write], b.rows[read])
		}
		write--
	}
	cleared := write + 1
	for y := 0; y <= write; y++ {
		clear(b.rows[y])
	}
	return cleared
}

// SpawnAreaBlocked reports whether a freshly spawned p would overlap
// locked cells or the walls.
func (b *Board) SpawnAreaBlocked(p piece.Piece) bool {
	return !b.IsValid(p)
}

// DropDistance returns how many rows p can fall before it rests.
func (b *Board) DropDistance(p piece.Piece) int {
	n := 0
	for b.IsValid(p.Moved(0, n+1)) {
		n++
	}
	return n
}

// SpawnPosition returns the origin where a new piece appears: the 4x4 box
// horizontally centred (left of centre on even widths) at the top of the
// hidden buffer.
func (b *Board) SpawnPosition() (int, int) {
	return (b.width - 4) / 2, 0
}

// Rows returns a deep copy of the grid, hidden rows first.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, len(b.rows))
	for y, row := range b.rows {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Reset empties every cell.
func (b *Board) Reset() {
	for _, row := range b.rows {
		clear(row)
	}
}

// String renders the grid with '.' for empty cells and '#' for locked ones.
func (b *Board) String() string {
	buf := make([]byte, 0, (b.width+1)*len(b.rows))
	for y, row := range b.rows {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for _, c := range row {
			if c.Empty() {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
	}
	return string(buf)
}
