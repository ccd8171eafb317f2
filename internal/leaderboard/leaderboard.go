// Package leaderboard mirrors finished games into a shared Redis sorted set
// so several machines can show a common "world best" table.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Board is a Redis-backed leaderboard.
type Board struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*Board, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: invalid redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("leaderboard: cannot reach redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a leaderboard with an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config) *Board {
	return &Board{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (b *Board) Close() error {
	return b.client.Close()
}

// Save adds a finished game and trims the set to the configured size.
func (b *Board) Save(ctx context.Context, rec core.ScoreRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode record: %w", err)
	}

	key := scoresKey()
	_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(rec.Score), Member: string(data)})
		if b.cfg.Keep > 0 {
			pipe.ZRemRangeByRank(ctx, key, 0, int64(-b.cfg.Keep-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("leaderboard: cannot save score: %w", err)
	}
	return nil
}

// TopN returns the best n games, highest score first.
func (b *Board) TopN(ctx context.Context, n int) ([]core.ScoreRecord, error) {
	if n <= 0 {
		n = 10
	}
	members, err := b.client.ZRevRange(ctx, scoresKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query scores: %w", err)
	}

	records := make([]core.ScoreRecord, 0, len(members))
	for _, m := range members {
		var rec core.ScoreRecord
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, fmt.Errorf("leaderboard: corrupt entry %q: %w", m, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Len returns the number of stored games.
func (b *Board) Len(ctx context.Context) (int64, error) {
	n, err := b.client.ZCard(ctx, scoresKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot count scores: %w", err)
	}
	return n, nil
}
