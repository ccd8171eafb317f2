package clock

import (
	"testing"
	"time"
)

func TestMock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMock(start)

	m.Advance(1500 * time.Millisecond)
	if got := m.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("after Advance: elapsed %v", got)
	}

	m.Set(start)
	if !m.Now().Equal(start) {
		t.Errorf("after Set: %v", m.Now())
	}
}

func TestRealMovesForward(t *testing.T) {
	c := New()
	a := c.Now()
	if c.Now().Before(a) {
		t.Error("real clock went backwards")
	}
}
