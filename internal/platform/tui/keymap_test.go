package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapCommand(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Command
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.CmdMoveLeft},
		{"vim left", runes("h"), core.CmdMoveLeft},
		{"wasd left", runes("a"), core.CmdMoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.CmdMoveRight},
		{"vim right", runes("l"), core.CmdMoveRight},
		{"up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.CmdRotateCW},
		{"x rotates", runes("x"), core.CmdRotateCW},
		{"z rotates back", runes("z"), core.CmdRotateCCW},
		{"down soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.CmdSoftDrop},
		{"j soft drops", runes("j"), core.CmdSoftDrop},
		{"space hard drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.CmdHardDrop},
		{"p pauses", runes("p"), core.CmdPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEscape}, core.CmdPause},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, core.CmdRestart},
		{"q quits", runes("q"), core.CmdQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.CmdQuit},
		{"unbound", runes("k"), core.CmdNone},
		{"tab unbound", tea.KeyMsg{Type: tea.KeyTab}, core.CmdNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Command(tc.msg); got != tc.want {
				t.Errorf("Command(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestKeyMapHelpCoversEveryBinding(t *testing.T) {
	keys := DefaultKeyMap()
	n := 0
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	if n != 10 {
		t.Errorf("FullHelp lists %d bindings, expected 10", n)
	}
}
