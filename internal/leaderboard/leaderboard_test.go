package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

type LeaderboardSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	board *Board
	ctx   context.Context
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardSuite))
}

func (s *LeaderboardSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.Keep = 3

	s.board = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *LeaderboardSuite) TearDownTest() {
	if s.board != nil {
		_ = s.board.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func record(name string, score uint64) core.ScoreRecord {
	return core.ScoreRecord{
		Name:  name,
		Score: score,
		Level: 1,
		Lines: 4,
		At:    time.Date(2024, 2, 2, 8, 0, 0, int(score), time.UTC),
	}
}

func (s *LeaderboardSuite) TestSaveAndTopN() {
	s.Require().NoError(s.board.Save(s.ctx, record("ada", 500)))
	s.Require().NoError(s.board.Save(s.ctx, record("bob", 900)))
	s.Require().NoError(s.board.Save(s.ctx, record("cy", 100)))

	top, err := s.board.TopN(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("bob", top[0].Name)
	s.Equal(uint64(900), top[0].Score)
	s.Equal("cy", top[2].Name)
	s.True(top[0].At.Equal(record("bob", 900).At))
}

func (s *LeaderboardSuite) TestSaveTrimsToKeep() {
	for i, score := range []uint64{10, 50, 20, 40, 30} {
		s.Require().NoError(s.board.Save(s.ctx, record(string(rune('a'+i)), score)))
	}

	n, err := s.board.Len(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	top, err := s.board.TopN(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal([]uint64{50, 40, 30}, []uint64{top[0].Score, top[1].Score, top[2].Score})
}

func (s *LeaderboardSuite) TestTopNLimit() {
	s.Require().NoError(s.board.Save(s.ctx, record("ada", 1)))
	s.Require().NoError(s.board.Save(s.ctx, record("bob", 2)))

	top, err := s.board.TopN(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("bob", top[0].Name)
}

func (s *LeaderboardSuite) TestCorruptEntry() {
	s.mini.ZAdd(scoresKey(), 5, "not json")

	_, err := s.board.TopN(s.ctx, 10)
	s.Error(err)
}

func (s *LeaderboardSuite) TestSaveFailsWhenRedisIsDown() {
	s.mini.SetError("ERR injected failure")

	err := s.board.Save(s.ctx, record("ada", 1))
	s.Error(err)
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "://nope"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestNewPings(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	b, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer b.Close()
}
