package piece

import (
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestEveryShapeHasFourDistinctCells(t *testing.T) {
	for _, k := range Kinds {
		for r := Rotation(0); r < 4; r++ {
			seen := make(map[Offset]bool)
			for _, c := range Cells(k, r) {
				if c.X < 0 || c.X > 3 || c.Y < 0 || c.Y > 3 {
					t.Errorf("%s/%s: cell %+v outside 4x4 box", k, r, c)
				}
				seen[c] = true
			}
			if len(seen) != 4 {
				t.Errorf("%s/%s: expected 4 distinct cells, got %d", k, r, len(seen))
			}
		}
	}
}

func TestRotationCycle(t *testing.T) {
	for r := Rotation(0); r < 4; r++ {
		if r.CW().CCW() != r {
			t.Errorf("%s: CW then CCW should return to start", r)
		}
		if r.CW().CW().CW().CW() != r {
			t.Errorf("%s: four CW turns should return to start", r)
		}
	}
	if Spawn.CCW() != Left {
		t.Errorf("Spawn.CCW() = %s, expected L", Spawn.CCW())
	}
}

func TestKicksStartInPlace(t *testing.T) {
	for _, k := range Kinds {
		for from := Rotation(0); from < 4; from++ {
			for _, to := range []Rotation{from.CW(), from.CCW()} {
				kicks := Kicks(k, from, to)
				if len(kicks) == 0 || kicks[0] != (Offset{}) {
					t.Fatalf("%s %s->%s: first kick must be (0,0), got %v", k, from, to, kicks)
				}
				want := 5
				if k == O {
					want = 1
				}
				if len(kicks) != want {
					t.Errorf("%s %s->%s: expected %d kicks, got %d", k, from, to, want, len(kicks))
				}
			}
		}
	}
}

func TestKicksAreInverse(t *testing.T) {
	// Rotating there and back uses mirrored offsets.
	for _, k := range []Kind{I, T} {
		for from := Rotation(0); from < 4; from++ {
			to := from.CW()
			fwd := Kicks(k, from, to)
			back := Kicks(k, to, from)
			for i := range fwd {
				if fwd[i].X != -back[i].X || fwd[i].Y != -back[i].Y {
					t.Errorf("%s %s<->%s test %d: %+v vs %+v", k, from, to, i, fwd[i], back[i])
				}
			}
		}
	}
}

func TestKicksKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		from, to Rotation
		index    int
		expected Offset
	}{
		{"T 0->R second test", T, Spawn, Right, 1, Offset{-1, 0}},
		{"T 0->R third test lifts", T, Spawn, Right, 2, Offset{-1, -1}},
		{"J L->0 fourth test", J, Left, Spawn, 3, Offset{0, -2}},
		{"I 0->R second test", I, Spawn, Right, 1, Offset{-2, 0}},
		{"I R->2 last test", I, Right, Flip, 4, Offset{2, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Kicks(tc.kind, tc.from, tc.to)[tc.index]; got != tc.expected {
				t.Errorf("got %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestKicksCannotBeModified(t *testing.T) {
	for _, k := range []Kind{T, I, O} {
		kicks := Kicks(k, Spawn, Right)
		for i := range kicks {
			kicks[i] = Offset{9, 9}
		}
		if again := Kicks(k, Spawn, Right); again[0] != (Offset{}) {
			t.Errorf("%s: writing to the result changed the table: %v", k, again)
		}
	}
	far := Kicks(T, Spawn, Flip)
	far[0] = Offset{1, 1}
	if again := Kicks(T, Spawn, Flip); again[0] != (Offset{}) {
		t.Errorf("in-place test changed: %v", again)
	}
}

func TestPieceCellsAndMoves(t *testing.T) {
	p := New(T, 3, 0)
	want := [4]core.Point{{X: 4, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 5, Y: 1}}
	if got := p.Cells(); got != want {
		t.Errorf("Cells() = %v, expected %v", got, want)
	}

	moved := p.Moved(1, 2)
	if moved.X != 4 || moved.Y != 2 || p.X != 3 {
		t.Errorf("Moved should return a shifted copy, got %v (orig %v)", moved, p)
	}

	rot := p.Rotated(Right, Offset{X: -1})
	if rot.Rotation != Right || rot.X != 2 || p.Rotation != Spawn {
		t.Errorf("Rotated should return a rotated copy, got %v", rot)
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected core.Color
	}{
		{I, core.ColorCyan},
		{O, core.ColorYellow},
		{T, core.ColorMagenta},
		{S, core.ColorGreen},
		{Z, core.ColorRed},
		{J, core.ColorBlue},
		{L, core.ColorOrange},
		{Kind(9), core.ColorDefault},
	}
	for _, tc := range tests {
		if got := Color(tc.kind); got != tc.expected {
			t.Errorf("Color(%s) = %s, expected %s", tc.kind, got, tc.expected)
		}
	}
}
