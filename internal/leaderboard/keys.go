package leaderboard

import "fmt"

// Key prefix for all leaderboard data
const keyPrefix = "blocktui"

// scoresKey returns the sorted set holding the best games.
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}
