// Package piece describes the seven tetromino kinds, their four rotation
// states and the Super Rotation System wall-kick tables.
//
// Coordinates are cell offsets inside a 4x4 bounding box with y growing
// downward, matching the board.
package piece

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Kinds lists every kind in canonical order. The bag shuffles a copy of it.
var Kinds = [...]Kind{I, O, T, S, Z, J, L}

// Count is the number of kinds.
const Count = len(Kinds)

func (k Kind) String() string {
	if int(k) < Count {
		return "IOTSZJL"[k : k+1]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return int(k) < Count
}

// Rotation is one of four orientation states, clockwise from spawn.
type Rotation uint8

const (
	Spawn Rotation = iota // 0
	Right                 // R
	Flip                  // 2
	Left                  // L
)

// CW returns the state reached by rotating clockwise.
func (r Rotation) CW() Rotation { return (r + 1) % 4 }

// CCW returns the state reached by rotating counter-clockwise.
func (r Rotation) CCW() Rotation { return (r + 3) % 4 }

func (r Rotation) String() string {
	switch r % 4 {
	case Spawn:
		return "0"
	case Right:
		return "R"
	case Flip:
		return "2"
	default:
		return "L"
	}
}

// Offset is a cell displacement relative to a piece origin.
type Offset struct {
	X, Y int
}

// Shape is the four occupied cells of a kind in one rotation state.
type Shape [4]Offset

var colors = [Count]core.Color{
	I: core.ColorCyan,
	O: core.ColorYellow,
	T: core.ColorMagenta,
	S: core.ColorGreen,
	Z: core.ColorRed,
	J: core.ColorBlue,
	L: core.ColorOrange,
}

// Color returns the display colour of a kind.
func Color(k Kind) core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return colors[k]
}

// Cells returns the occupied offsets of kind k in rotation r.
func Cells(k Kind, r Rotation) Shape {
	return shapes[k][r%4]
}

// Piece is the active falling piece. It is a value type: movement builds a
// candidate copy and the caller commits it only if the board accepts it.
type Piece struct {
	Kind     Kind
	Rotation Rotation
	X, Y     int // origin of the 4x4 box on the board
}

// New returns a piece of kind k in spawn orientation at (x, y).
func New(k Kind, x, y int) Piece {
	return Piece{Kind: k, X: x, Y: y}
}

// Cells returns the absolute board positions the piece occupies.
func (p Piece) Cells() [4]core.Point {
	var out [4]core.Point
	for i, o := range Cells(p.Kind, p.Rotation) {
		out[i] = core.Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return out
}

// Moved returns a copy translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy in rotation state to, shifted by kick.
func (p Piece) Rotated(to Rotation, kick Offset) Piece {
	p.Rotation = to % 4
	p.X += kick.X
	p.Y += kick.Y
	return p
}

// Color returns the piece's display colour.
func (p Piece) Color() core.Color {
	return Color(p.Kind)
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@%s(%d,%d)", p.Kind, p.Rotation, p.X, p.Y)
}
