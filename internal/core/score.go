package core

import "time"

// ScoreRecord is the immutable result of a finished game.
type ScoreRecord struct {
	Name  string    `json:"name"`
	Score uint64    `json:"score"`
	Level uint      `json:"level"`
	Lines uint      `json:"lines"`
	At    time.Time `json:"at"`
}
