package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

func TestPlayerName(t *testing.T) {
	t.Setenv("USER", "ada")
	if got := playerName("  bob "); got != "bob" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := playerName(""); got != "ada" {
		t.Errorf("expected $USER, got %q", got)
	}

	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	got := playerName("")
	if got == "" || !strings.Contains(got, "-") {
		t.Errorf("expected a generated two-word name, got %q", got)
	}
}

func TestLoadRulesDifficulty(t *testing.T) {
	defer func(d, c string) { flagDifficulty, flagConfig = d, c }(flagDifficulty, flagConfig)
	flagConfig = ""

	flagDifficulty = "hard"
	rules, err := loadRules()
	if err != nil {
		t.Fatalf("loadRules() failed: %v", err)
	}
	if rules.Gravity.StartLevel != config.StartLevelForPreset(config.DifficultyHard) {
		t.Errorf("start level = %d", rules.Gravity.StartLevel)
	}

	flagDifficulty = "impossible"
	if _, err := loadRules(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestLoadRulesRejectsInvalidFile(t *testing.T) {
	defer func(d, c string) { flagDifficulty, flagConfig = d, c }(flagDifficulty, flagConfig)
	flagDifficulty = ""
	flagConfig = filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(flagConfig, []byte("board:\n  width: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadRules(); err == nil {
		t.Error("expected validation error for a 2-wide board")
	}
}

func TestOpenSourcesWithoutRedis(t *testing.T) {
	defer func(db, r string) { flagDBPath, flagRedis = db, r }(flagDBPath, flagRedis)
	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
	flagRedis = ""

	src, err := openSources(context.Background(), log.New(&bytes.Buffer{}), config.DefaultRules())
	if err != nil {
		t.Fatalf("openSources() failed: %v", err)
	}
	defer src.Close()

	if src.worldSource() != nil {
		t.Error("world source should be nil without --redis")
	}
	rec := core.ScoreRecord{Name: "ada", Score: 10, At: time.Now()}
	if err := src.recorder().Save(context.Background(), rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	scores, err := src.store.TopN(context.Background(), 5)
	if err != nil || len(scores) != 1 {
		t.Errorf("expected one stored score, got %v (%v)", scores, err)
	}
}

func TestUnreachableLeaderboardIsNotFatal(t *testing.T) {
	defer func(r string) { flagRedis = r }(flagRedis)
	flagRedis = "redis://127.0.0.1:1/0"

	var buf bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if b := connectLeaderboard(ctx, log.New(&buf), 10); b != nil {
		t.Fatal("expected no leaderboard")
	}
	if !strings.Contains(buf.String(), "leaderboard unavailable") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	printScores(&buf, "High Scores", nil)
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	at := time.Date(2024, 3, 9, 18, 30, 0, 0, time.Local)
	printScores(&buf, "High Scores", []core.ScoreRecord{
		{Name: "ada", Score: 1200, Level: 3, Lines: 25, At: at},
		{Name: "bob", Score: 900, Level: 2, Lines: 14, At: at},
	})
	out := buf.String()
	for _, want := range []string{"High Scores", "Rank", "ada", "1200", "bob", "2024-03-09 18:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayNeedsTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("running attached to a terminal")
	}
	if err := runPlay(rootCmd, nil); !errors.Is(err, errNoTerminal) {
		t.Errorf("runPlay() = %v, expected errNoTerminal", err)
	}
}

func TestPrintStats(t *testing.T) {
	defer func(db string) { flagDBPath = db }(flagDBPath)
	flagDBPath = filepath.Join(t.TempDir(), "scores.db")
	src, err := openSources(context.Background(), log.New(&bytes.Buffer{}), config.DefaultRules())
	if err != nil {
		t.Fatalf("openSources() failed: %v", err)
	}
	defer src.Close()
	ctx := context.Background()

	var buf bytes.Buffer
	printStats(ctx, &buf, src.store)
	if buf.Len() != 0 {
		t.Errorf("empty store should print nothing, got %q", buf.String())
	}

	for _, score := range []uint64{100, 300} {
		if err := src.store.Save(ctx, core.ScoreRecord{Name: "ada", Score: score, Lines: 5, At: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}
	printStats(ctx, &buf, src.store)
	out := buf.String()
	for _, want := range []string{"Best: 300", "Games: 2", "Average: 200", "Lines: 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}
