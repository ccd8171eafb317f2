package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRules returns the hardcoded rules, used when even the embedded
// YAML cannot be parsed.
func DefaultRules() Rules {
	return Rules{
		Board: BoardRules{
			Width:      10,
			Height:     20,
			HiddenRows: 2,
		},
		Gravity: GravityRules{
			StartLevel:    1,
			LinesPerLevel: 10,
			IntervalsMS:   []int{1000, 793, 618, 473, 355, 262, 190, 135, 94, 64, 43, 28, 18, 11, 7},
		},
		Lock: LockRules{
			DelayMS:   500,
			MaxResets: 15,
		},
		Input: InputRules{
			DebounceMS: 30,
		},
		Preview: 3,
		Scores: ScoreRules{
			Keep: 100,
		},
	}
}
