package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Recorder persists a finished game.
type Recorder interface {
	Save(ctx context.Context, rec core.ScoreRecord) error
}

// Source lists stored games, best first.
type Source interface {
	TopN(ctx context.Context, n int) ([]core.ScoreRecord, error)
}

// Tee saves to a primary recorder and then to every mirror. All failures
// are reported together; a failing mirror does not stop the others.
type Tee struct {
	Primary Recorder
	Mirrors []Recorder
}

// Save implements Recorder.
func (t Tee) Save(ctx context.Context, rec core.ScoreRecord) error {
	var errs []error
	if t.Primary != nil {
		if err := t.Primary.Save(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	for i, m := range t.Mirrors {
		if err := m.Save(ctx, rec); err != nil {
			errs = append(errs, fmt.Errorf("mirror %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

var (
	_ Recorder = (*Store)(nil)
	_ Source   = (*Store)(nil)
	_ Recorder = Tee{}
)
