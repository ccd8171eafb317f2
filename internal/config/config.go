// Package config provides YAML-based rules loading and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Rules contains every tunable of the game.
type Rules struct {
	Board   BoardRules   `yaml:"board"`
	Gravity GravityRules `yaml:"gravity"`
	Lock    LockRules    `yaml:"lock"`
	Input   InputRules   `yaml:"input"`
	Preview int          `yaml:"preview"` // upcoming pieces shown
	Scores  ScoreRules   `yaml:"scores"`
}

// BoardRules defines the playfield size.
type BoardRules struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`      // visible rows
	HiddenRows int `yaml:"hidden_rows"` // spawn buffer above the visible area
}

// GravityRules defines levels and fall speed.
type GravityRules struct {
	StartLevel    uint  `yaml:"start_level"`
	LinesPerLevel uint  `yaml:"lines_per_level"` // 0 disables level progression
	IntervalsMS   []int `yaml:"intervals_ms"`    // index 0 is level 1; the last entry repeats
}

// LockRules defines the grounded grace period.
type LockRules struct {
	DelayMS   int `yaml:"delay_ms"`
	MaxResets int `yaml:"max_resets"` // move/rotate resets allowed per piece
}

// InputRules defines how raw key repeats are filtered.
type InputRules struct {
	DebounceMS int `yaml:"debounce_ms"` // 0 disables debouncing
}

// ScoreRules defines score retention.
type ScoreRules struct {
	Keep int `yaml:"keep"` // rows kept in the local store; 0 keeps everything
}

// Interval returns the gravity interval for a level. Levels start at 1 and
// levels past the end of the table use its last entry.
func (g GravityRules) Interval(level uint) time.Duration {
	if len(g.IntervalsMS) == 0 {
		return time.Second
	}
	i := int(level) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(g.IntervalsMS) {
		i = len(g.IntervalsMS) - 1
	}
	return time.Duration(g.IntervalsMS[i]) * time.Millisecond
}

// LevelFor returns the level reached after clearing lines in total.
func (g GravityRules) LevelFor(lines uint) uint {
	if g.LinesPerLevel == 0 {
		return g.StartLevel
	}
	return g.StartLevel + lines/g.LinesPerLevel
}

// LockDelay returns the lock delay as a duration.
func (l LockRules) LockDelay() time.Duration {
	return time.Duration(l.DelayMS) * time.Millisecond
}

// Debounce returns the debounce window as a duration.
func (i InputRules) Debounce() time.Duration {
	return time.Duration(i.DebounceMS) * time.Millisecond
}

// Validate reports every impossible setting at once.
func (r Rules) Validate() error {
	var errs []error
	if r.Board.Width < 4 {
		errs = append(errs, fmt.Errorf("board.width must be at least 4, got %d", r.Board.Width))
	}
	if r.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board.height must be at least 4, got %d", r.Board.Height))
	}
	if r.Board.HiddenRows < 0 {
		errs = append(errs, fmt.Errorf("board.hidden_rows must not be negative, got %d", r.Board.HiddenRows))
	}
	if r.Gravity.StartLevel < 1 {
		errs = append(errs, errors.New("gravity.start_level must be at least 1"))
	}
	if len(r.Gravity.IntervalsMS) == 0 {
		errs = append(errs, errors.New("gravity.intervals_ms must not be empty"))
	}
	for i, ms := range r.Gravity.IntervalsMS {
		if ms <= 0 {
			errs = append(errs, fmt.Errorf("gravity.intervals_ms[%d] must be positive, got %d", i, ms))
		}
	}
	if r.Lock.DelayMS < 0 || r.Lock.MaxResets < 0 {
		errs = append(errs, errors.New("lock.delay_ms and lock.max_resets must not be negative"))
	}
	if r.Input.DebounceMS < 0 {
		errs = append(errs, errors.New("input.debounce_ms must not be negative"))
	}
	if r.Preview < 0 || r.Preview > 6 {
		errs = append(errs, fmt.Errorf("preview must be between 0 and 6, got %d", r.Preview))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid rules: %w", errors.Join(errs...))
	}
	return nil
}
