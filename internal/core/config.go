package core

import "time"

// RuntimeConfig contains per-run settings that come from flags or the SSH
// session rather than the rules file.
type RuntimeConfig struct {
	Seed   int64  // Bag seed; 0 means derive one from the current time
	Player string // Name stored with the score record
}

// ResolveSeed returns Seed, or a time-derived seed when Seed is zero.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
