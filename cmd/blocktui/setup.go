package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	petname "github.com/dustinkirkland/golang-petname"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// loadRules reads the rules file and applies the difficulty flag.
func loadRules() (config.Rules, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Rules{}, err
	}
	rules, err := config.Load(flagConfig)
	if err != nil {
		return config.Rules{}, err
	}
	config.ApplyPreset(&rules, preset)
	return rules, nil
}

// playerName picks the name stored with scores: --name, then $USER, then a
// generated pet name.
func playerName(flag string) string {
	for _, name := range []string{flag, os.Getenv("USER"), os.Getenv("USERNAME")} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return petname.Generate(2, "-")
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// newStderrLogger is used by commands that do not own the screen.
func newStderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
}

// openFileLogger logs to path, falling back to the data directory. The
// alternate screen owns stdout while a game runs.
func openFileLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		path = config.UserPath("blocktui.log")
	}
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocktui",
		Level:           logLevel(),
	})
	return logger, f, nil
}

// connectLeaderboard dials the shared leaderboard when --redis is set. A
// failure is logged and the game continues with local scores only.
func connectLeaderboard(ctx context.Context, logger *log.Logger, keep int) *leaderboard.Board {
	if flagRedis == "" {
		return nil
	}
	cfg := leaderboard.DefaultConfig()
	cfg.URL = flagRedis
	if keep > 0 {
		cfg.Keep = keep
	}
	board, err := leaderboard.New(ctx, cfg)
	if err != nil {
		logger.Warn("leaderboard unavailable, using local scores only", "err", err)
		return nil
	}
	return board
}

// sources bundles the score backends a command works with.
type sources struct {
	store *storage.Store
	world *leaderboard.Board
}

// recorder saves to the local store and mirrors to the leaderboard.
func (s sources) recorder() storage.Recorder {
	tee := storage.Tee{Primary: s.store}
	if s.world != nil {
		tee.Mirrors = append(tee.Mirrors, s.world)
	}
	return tee
}

// worldSource keeps a nil board from becoming a non-nil interface.
func (s sources) worldSource() storage.Source {
	if s.world == nil {
		return nil
	}
	return s.world
}

func (s sources) Close() {
	if s.world != nil {
		s.world.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

func openSources(ctx context.Context, logger *log.Logger, rules config.Rules) (sources, error) {
	store, err := storage.Open(flagDBPath, storage.WithKeep(rules.Scores.Keep))
	if err != nil {
		return sources{}, err
	}
	return sources{store: store, world: connectLeaderboard(ctx, logger, rules.Scores.Keep)}, nil
}
