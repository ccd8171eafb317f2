package engine

// Phase is the engine's position in the piece lifecycle.
//
//	Spawning -> Falling -> Locking -> Clearing -> Spawning
//	Spawning -> GameOver            (spawn area blocked)
//	Falling  <-> Paused
//
// Spawning, Locking and Clearing are transient: they are resolved inside the
// event that entered them, so callers only ever observe Falling, Paused or
// GameOver between events.
type Phase uint8

const (
	Spawning Phase = iota
	Falling
	Locking
	Clearing
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "spawning"
	case Falling:
		return "falling"
	case Locking:
		return "locking"
	case Clearing:
		return "clearing"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

func (p Phase) transient() bool {
	return p == Spawning || p == Locking || p == Clearing
}
