package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

var day = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, name string, score uint64, at time.Time) {
	t.Helper()
	rec := core.ScoreRecord{Name: name, Score: score, Level: 2, Lines: 12, At: at}
	if err := s.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopN(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	save(t, store, "ada", 100, day)
	save(t, store, "bob", 50, day.Add(time.Minute))
	save(t, store, "ada", 200, day.Add(2*time.Minute))

	scores, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("TopN() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []uint64{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Name != "ada" || scores[0].Level != 2 || scores[0].Lines != 12 {
		t.Errorf("record fields not round-tripped: %+v", scores[0])
	}
	if !scores[0].At.Equal(day.Add(2 * time.Minute)) {
		t.Errorf("At = %v, expected %v", scores[0].At, day.Add(2*time.Minute))
	}
}

func TestStoreTopNLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "p", uint64(i*10), day.Add(time.Duration(i)*time.Second))
	}

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"explicit", 5, 5},
		{"default", 0, DefaultLimit},
		{"more than stored", 50, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := store.TopN(context.Background(), tc.limit)
			if err != nil {
				t.Fatalf("TopN() failed: %v", err)
			}
			if len(scores) != tc.expected {
				t.Errorf("Expected %d scores, got %d", tc.expected, len(scores))
			}
			if scores[0].Score != 190 {
				t.Errorf("Expected best score 190, got %d", scores[0].Score)
			}
		})
	}
}

func TestStoreTiesPreferRecent(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "old", 300, day)
	save(t, store, "new", 300, day.Add(time.Hour))

	scores, _ := store.TopN(context.Background(), 2)
	if len(scores) != 2 || scores[0].Name != "new" {
		t.Errorf("Expected the newer tie first, got %+v", scores)
	}
}

func TestStorePersonalBest(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "ada", 10, day)
	save(t, store, "bob", 999, day)
	save(t, store, "ada", 30, day)
	save(t, store, "ada", 20, day)

	best, err := store.PersonalBest(context.Background(), "ada", 2)
	if err != nil {
		t.Fatalf("PersonalBest() failed: %v", err)
	}
	if len(best) != 2 || best[0].Score != 30 || best[1].Score != 20 {
		t.Errorf("unexpected personal best: %+v", best)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.HighScore(ctx); !errors.Is(err, ErrNoScores) {
		t.Errorf("Expected ErrNoScores for empty store, got %v", err)
	}

	save(t, store, "ada", 100, day)
	save(t, store, "ada", 300, day)
	save(t, store, "ada", 200, day)

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreKeepPrunes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	for i := 1; i <= 8; i++ {
		save(t, store, "p", uint64(i), day)
	}
	store.Close()

	// Reopening with a limit prunes existing rows.
	store, err = Open(dbPath, WithKeep(5))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	scores, _ := store.TopN(ctx, 100)
	if len(scores) != 5 || scores[4].Score != 4 {
		t.Fatalf("Expected the best 5 scores after open, got %+v", scores)
	}

	// Saving keeps the limit and drops the weakest game.
	save(t, store, "p", 100, day)
	save(t, store, "p", 1, day)
	scores, _ = store.TopN(ctx, 100)
	if len(scores) != 5 || scores[0].Score != 100 || scores[4].Score != 5 {
		t.Errorf("Expected pruning after save, got %+v", scores)
	}
}

func TestStoreClearAndStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	save(t, store, "ada", 100, day)
	save(t, store, "bob", 300, day.Add(time.Hour))

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalLines != 24 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if !stats.LastPlayed.Equal(day.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v", stats.LastPlayed)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	scores, _ := store.TopN(ctx, 10)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.blocktui/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join(".blocktui", "scores.db")) {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should be untouched, got %q", got)
	}
}

type failingRecorder struct{ err error }

func (f failingRecorder) Save(context.Context, core.ScoreRecord) error { return f.err }

func TestTeeReportsEveryFailure(t *testing.T) {
	store := openTestStore(t)
	errA := errors.New("redis down")
	tee := Tee{Primary: store, Mirrors: []Recorder{failingRecorder{errA}, failingRecorder{nil}}}

	err := tee.Save(context.Background(), core.ScoreRecord{Name: "ada", Score: 5, At: day})
	if !errors.Is(err, errA) {
		t.Errorf("Expected mirror error, got %v", err)
	}
	scores, _ := store.TopN(context.Background(), 10)
	if len(scores) != 1 {
		t.Error("primary save should succeed despite mirror failure")
	}
}
