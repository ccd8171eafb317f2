// Package bag implements the 7-bag piece randomizer: every run of seven
// draws starting at a bag boundary contains each kind exactly once.
package bag

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/piece"
)

// Generator deals piece kinds from successive shuffled bags.
// It is owned by a single engine and is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	queue []piece.Kind
}

// New returns a generator seeded with seed. Equal seeds deal equal sequences.
func New(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

// NewWithRand returns a generator drawing randomness from rng.
func NewWithRand(rng *rand.Rand) *Generator {
	g := &Generator{rng: rng}
	g.refill()
	return g
}

// refill appends one freshly shuffled bag to the queue.
func (g *Generator) refill() {
	next := piece.Kinds
	g.rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
	g.queue = append(g.queue, next[:]...)
}

// Next removes and returns the next kind.
func (g *Generator) Next() piece.Kind {
	if len(g.queue) == 0 {
		g.refill()
	}
	k := g.queue[0]
	g.queue = g.queue[1:]
	return k
}

// Peek returns the next n kinds without consuming them. Whole bags are
// appended as needed, so the preview never changes what Next deals.
func (g *Generator) Peek(n int) []piece.Kind {
	for len(g.queue) < n {
		g.refill()
	}
	out := make([]piece.Kind, n)
	copy(out, g.queue)
	return out
}
