package engine

import "fmt"

// InvariantError reports a broken internal invariant, such as locking a piece
// that overlaps the board. It indicates a bug and ends the session.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: invariant violated during %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
