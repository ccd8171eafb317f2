// Package tui provides the Bubble Tea front end: it feeds key presses to a
// game session as commands and draws the snapshots the session publishes.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/engine"
	"github.com/vovakirdan/tui-blocks/internal/session"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

const (
	inputBuffer  = 32
	scoreTimeout = 2 * time.Second
)

// Bests lists one player's best games.
type Bests interface {
	PersonalBest(ctx context.Context, name string, n int) ([]core.ScoreRecord, error)
}

// Config wires a Model to its game and score sources.
type Config struct {
	Session session.Config
	Local   Bests          // optional
	World   storage.Source // optional

	// ScreenshotDir defaults to ~/.blocktui/screenshots.
	ScreenshotDir string
}

type (
	snapshotMsg    engine.Snapshot
	sessionDoneMsg struct{ err error }
	scoresMsg      struct{ best, world []core.ScoreRecord }
	noticeMsg      string
)

// Model is the Bubble Tea model for one game session.
type Model struct {
	cfg    Config
	sess   *session.Session
	input  chan core.Command
	latest *session.Latest
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	snap    engine.Snapshot
	hasSnap bool
	panel   Panel
	notice  string

	screen *core.Screen
	keys   KeyMap
	help   help.Model
	width  int
	height int

	quitting bool
	done     bool
	err      error
}

// NewModel creates a model and its session. The session starts with Init
// and stops when ctx is cancelled or the player quits.
func NewModel(ctx context.Context, cfg Config) Model {
	ctx, cancel := context.WithCancel(ctx)
	logger := cfg.Session.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, h := Layout(cfg.Session.Rules.Board.Width, cfg.Session.Rules.Board.Height)
	return Model{
		cfg:    cfg,
		sess:   session.New(cfg.Session),
		input:  make(chan core.Command, inputBuffer),
		latest: session.NewLatest(),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		panel:  Panel{Player: cfg.Session.Player},
		screen: core.NewScreen(w, h),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts the session goroutine and the snapshot listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runSession(), m.waitSnapshot(), m.loadScores())
}

func (m Model) runSession() tea.Cmd {
	sess, input, latest, ctx := m.sess, m.input, m.latest, m.ctx
	return func() tea.Msg {
		return sessionDoneMsg{err: sess.Run(ctx, input, latest.Publish)}
	}
}

func (m Model) waitSnapshot() tea.Cmd {
	latest, ctx := m.latest, m.ctx
	return func() tea.Msg {
		select {
		case snap := <-latest.C():
			return snapshotMsg(snap)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) loadScores() tea.Cmd {
	local, world, player, ctx := m.cfg.Local, m.cfg.World, m.cfg.Session.Player, m.ctx
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
		defer cancel()

		var msg scoresMsg
		if local != nil {
			best, err := local.PersonalBest(ctx, player, bestShown)
			if err != nil {
				logger.Warn("could not load personal best", "err", err)
			}
			msg.best = best
		}
		if world != nil {
			top, err := world.TopN(ctx, 1)
			if err != nil {
				logger.Warn("could not load leaderboard", "err", err)
			}
			msg.world = top
		}
		return msg
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case snapshotMsg:
		return m.handleSnapshot(engine.Snapshot(msg))
	case scoresMsg:
		m.panel.Best, m.panel.World = msg.best, msg.world
		return m, nil
	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	case sessionDoneMsg:
		m.done = true
		m.err = msg.err
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Shot) {
		return m, m.saveScreenshot()
	}

	cmd := m.keys.Command(msg)
	if cmd == core.CmdNone {
		return m, nil
	}
	if cmd == core.CmdQuit {
		m.quitting = true
		if m.done || !m.send(cmd) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}
	m.notice = ""
	m.send(cmd)
	return m, nil
}

// send hands cmd to the session without blocking the UI loop. A full
// buffer drops the command.
func (m Model) send(cmd core.Command) bool {
	select {
	case m.input <- cmd:
		return true
	case <-m.ctx.Done():
		return false
	default:
		m.logger.Debug("input dropped", "cmd", cmd)
		return false
	}
}

func (m Model) handleSnapshot(snap engine.Snapshot) (tea.Model, tea.Cmd) {
	if m.hasSnap && snap.Seq < m.snap.Seq {
		return m, m.waitSnapshot()
	}
	ended := snap.Record != nil && (!m.hasSnap || m.snap.Record == nil)
	m.snap, m.hasSnap = snap, true

	if w, h := Layout(snap.Width, snap.Height); w != m.screen.Width() || h != m.screen.Height() {
		m.screen.Resize(w, h)
	}
	if ended {
		return m, tea.Batch(m.waitSnapshot(), m.loadScores())
	}
	return m, m.waitSnapshot()
}

// Err returns the error that stopped the session, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting && m.done {
		return ""
	}
	if !m.hasSnap {
		return "starting..."
	}
	if m.width > 0 && (m.width < m.screen.Width() || m.height < m.screen.Height()) {
		return fmt.Sprintf("terminal too small: need %dx%d, have %dx%d",
			m.screen.Width(), m.screen.Height(), m.width, m.height)
	}

	m.screen.Clear()
	DrawGame(m.screen, m.snap, m.panel)

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	out := RenderScreen(m.screen) + "\n" + footer.Render(m.help.View(m.keys))
	if m.notice != "" {
		out += "\n" + footer.Render(m.notice)
	}
	return out
}

// saveScreenshot writes the plain-text board to the screenshot directory.
func (m Model) saveScreenshot() tea.Cmd {
	screen := core.NewScreen(m.screen.Width(), m.screen.Height())
	DrawGame(screen, m.snap, m.panel)
	dir := m.cfg.ScreenshotDir
	return func() tea.Msg {
		if dir == "" {
			dir = config.UserPath("screenshots")
		}
		if dir == "" {
			return noticeMsg("screenshot failed: no home directory")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return noticeMsg("screenshot failed: " + err.Error())
		}
		path := filepath.Join(dir, "blocks_"+time.Now().Format("20060102_150405")+".txt")
		if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
			return noticeMsg("screenshot failed: " + err.Error())
		}
		return noticeMsg("saved " + path)
	}
}

// Run plays one session in the current terminal. It returns nil when the
// player quits.
func Run(ctx context.Context, cfg Config) error {
	p := tea.NewProgram(
		NewModel(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
