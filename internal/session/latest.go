package session

import "github.com/vovakirdan/tui-blocks/internal/engine"

// Latest is a one-slot mailbox that always holds the newest snapshot, so a
// slow renderer skips frames instead of stalling the game loop. It supports
// a single publisher.
type Latest struct {
	ch chan engine.Snapshot
}

// NewLatest creates an empty mailbox.
func NewLatest() *Latest {
	return &Latest{ch: make(chan engine.Snapshot, 1)}
}

// Publish replaces any unread snapshot with snap. It never blocks.
func (l *Latest) Publish(snap engine.Snapshot) {
	for {
		select {
		case l.ch <- snap:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// C returns the channel the renderer receives from.
func (l *Latest) C() <-chan engine.Snapshot {
	return l.ch
}
