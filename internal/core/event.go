package core

import (
	"fmt"
	"time"
)

// EventKind distinguishes gravity ticks from player input.
type EventKind uint8

const (
	EventTick EventKind = iota + 1
	EventInput
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventInput:
		return "input"
	default:
		return "unknown"
	}
}

// Event is one item of the merged, ordered stream the engine consumes.
type Event struct {
	Kind    EventKind
	Command Command       // set for EventInput
	Delta   time.Duration // time covered by an EventTick
	Seq     uint64        // assigned by the queue on delivery, strictly increasing
	At      time.Time     // when the producer observed the event
}

// Tick builds a gravity tick covering delta.
func Tick(delta time.Duration) Event {
	return Event{Kind: EventTick, Delta: delta}
}

// Input builds an input event for cmd.
func Input(cmd Command) Event {
	return Event{Kind: EventInput, Command: cmd}
}

func (e Event) String() string {
	if e.Kind == EventInput {
		return fmt.Sprintf("#%d input %s", e.Seq, e.Command)
	}
	return fmt.Sprintf("#%d tick %s", e.Seq, e.Delta)
}
