package piece

import "slices"

// transition is a (from, to) pair of adjacent rotation states.
type transition struct {
	from, to Rotation
}

// Wall kick offsets in test order. Values are the published SRS tables with
// the y axis flipped so that positive y moves down.
var (
	kicksJLSTZ = map[transition][]Offset{
		{Spawn, Right}: {o{0, 0}, o{-1, 0}, o{-1, -1}, o{0, 2}, o{-1, 2}},
		{Right, Spawn}: {o{0, 0}, o{1, 0}, o{1, 1}, o{0, -2}, o{1, -2}},
		{Right, Flip}:  {o{0, 0}, o{1, 0}, o{1, 1}, o{0, -2}, o{1, -2}},
		{Flip, Right}:  {o{0, 0}, o{-1, 0}, o{-1, -1}, o{0, 2}, o{-1, 2}},
		{Flip, Left}:   {o{0, 0}, o{1, 0}, o{1, -1}, o{0, 2}, o{1, 2}},
		{Left, Flip}:   {o{0, 0}, o{-1, 0}, o{-1, 1}, o{0, -2}, o{-1, -2}},
		{Left, Spawn}:  {o{0, 0}, o{-1, 0}, o{-1, 1}, o{0, -2}, o{-1, -2}},
		{Spawn, Left}:  {o{0, 0}, o{1, 0}, o{1, -1}, o{0, 2}, o{1, 2}},
	}

	kicksI = map[transition][]Offset{
		{Spawn, Right}: {o{0, 0}, o{-2, 0}, o{1, 0}, o{-2, 1}, o{1, -2}},
		{Right, Spawn}: {o{0, 0}, o{2, 0}, o{-1, 0}, o{2, -1}, o{-1, 2}},
		{Right, Flip}:  {o{0, 0}, o{-1, 0}, o{2, 0}, o{-1, -2}, o{2, 1}},
		{Flip, Right}:  {o{0, 0}, o{1, 0}, o{-2, 0}, o{1, 2}, o{-2, -1}},
		{Flip, Left}:   {o{0, 0}, o{2, 0}, o{-1, 0}, o{2, -1}, o{-1, 2}},
		{Left, Flip}:   {o{0, 0}, o{-2, 0}, o{1, 0}, o{-2, 1}, o{1, -2}},
		{Left, Spawn}:  {o{0, 0}, o{1, 0}, o{-2, 0}, o{1, 2}, o{-2, -1}},
		{Spawn, Left}:  {o{0, 0}, o{-1, 0}, o{2, 0}, o{-1, -2}, o{2, 1}},
	}

	kicksNone = []Offset{{}}
)

// Kicks returns the ordered wall-kick offsets to try when rotating kind k
// from one state to another. The first offset is always (0, 0). Transitions
// between non-adjacent states and the O piece only get the in-place test.
// The result is a fresh slice the caller may modify.
func Kicks(k Kind, from, to Rotation) []Offset {
	key := transition{from % 4, to % 4}
	var table map[transition][]Offset
	switch k {
	case I:
		table = kicksI
	case O:
		return slices.Clone(kicksNone)
	default:
		table = kicksJLSTZ
	}
	if kicks, ok := table[key]; ok {
		return slices.Clone(kicks)
	}
	return slices.Clone(kicksNone)
}
