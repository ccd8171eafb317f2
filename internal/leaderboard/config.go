package leaderboard

import "time"

// Config holds Redis connection and retention settings.
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Keep is the number of entries retained in the sorted set.
	Keep int

	// DialTimeout bounds the initial ping.
	DialTimeout time.Duration
}

// DefaultConfig returns sensible defaults for the leaderboard.
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     4,
		MinIdleConns: 1,
		Keep:         100,
		DialTimeout:  5 * time.Second,
	}
}
