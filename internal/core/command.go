package core

// Command is a semantic player intent, abstracted from physical key presses.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdRotateCW
	CmdRotateCCW
	CmdSoftDrop
	CmdHardDrop
	CmdPause
	CmdRestart
	CmdQuit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "None"
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdRotateCW:
		return "RotateCW"
	case CmdRotateCCW:
		return "RotateCCW"
	case CmdSoftDrop:
		return "SoftDrop"
	case CmdHardDrop:
		return "HardDrop"
	case CmdPause:
		return "Pause"
	case CmdRestart:
		return "Restart"
	case CmdQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Repeatable reports whether holding the key down produces a stream of the
// same command that the scheduler may debounce.
func (c Command) Repeatable() bool {
	switch c {
	case CmdMoveLeft, CmdMoveRight, CmdSoftDrop:
		return true
	}
	return false
}
