package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// maxScores caps how many rows a board loads.
const maxScores = 100

// Board is one named list of games shown as a tab.
type Board struct {
	Title  string
	Source storage.Source
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type boardLoadedMsg struct {
	index  int
	scores []core.ScoreRecord
	err    error
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
type ScoreboardModel struct {
	ctx    context.Context
	boards []Board
	cursor int
	scores []core.ScoreRecord
	err    error
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
}

// NewScoreboardModel creates a scoreboard over the given boards.
func NewScoreboardModel(ctx context.Context, boards []Board, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		ctx:    ctx,
		boards: boards,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Level", Width: 5},
		{Title: "Lines", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) load(i int) tea.Cmd {
	if i >= len(m.boards) || m.boards[i].Source == nil {
		return nil
	}
	src, ctx := m.boards[i].Source, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
		defer cancel()
		scores, err := src.TopN(ctx, maxScores)
		return boardLoadedMsg{index: i, scores: scores, err: err}
	}
}

// Rows converts records to table rows, best first.
func Rows(scores []core.ScoreRecord) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		date := ""
		if !s.At.IsZero() {
			date = s.At.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Name,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Lines),
			date,
		}
	}
	return rows
}

// Init loads the first board.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.load(0)
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.switchTo(m.cursor + 1)
		case key.Matches(msg, m.keys.Prev):
			return m.switchTo(m.cursor - 1)
		}

	case boardLoadedMsg:
		if msg.index != m.cursor {
			return m, nil
		}
		m.scores, m.err = msg.scores, msg.err
		m.table.SetRows(Rows(m.scores))
		m.table.GotoTop()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.table.SetRows(Rows(m.scores))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) switchTo(i int) (tea.Model, tea.Cmd) {
	if len(m.boards) < 2 {
		return m, nil
	}
	m.cursor = (i + len(m.boards)) % len(m.boards)
	m.scores, m.err = nil, nil
	m.table.SetRows(nil)
	return m, m.load(m.cursor)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(title.Render("HIGH SCORES"))
	b.WriteString("\n\n")

	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.boards))
	for i, bd := range m.boards {
		if i == m.cursor {
			tabs[i] = active.Render(bd.Title)
		} else {
			tabs[i] = tab.Render(bd.Title)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(frame.Render(m.content()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) content() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.err != nil:
		return empty.Render("Could not load scores:\n" + m.err.Error())
	case len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// RunScoreboard shows the boards until the user quits.
func RunScoreboard(ctx context.Context, boards []Board) error {
	p := tea.NewProgram(
		NewScoreboardModel(ctx, boards, 80, 24),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
