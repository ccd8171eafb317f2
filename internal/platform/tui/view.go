package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/engine"
	"github.com/vovakirdan/tui-blocks/internal/piece"
)

// Each board cell is drawn two characters wide so blocks look square.
const (
	cellWidth  = 2
	panelWidth = 22
	panelGap   = 2
	bestShown  = 3
)

var (
	blockCell = [cellWidth]rune{'█', '█'}
	ghostCell = [cellWidth]rune{'░', '░'}
	emptyCell = [cellWidth]rune{' ', '·'}
)

// Panel is the side information that does not come from the engine.
type Panel struct {
	Player string
	Best   []core.ScoreRecord // this player's best games
	World  []core.ScoreRecord // shared leaderboard, may be empty
}

// Layout returns the screen size needed to draw a board of the given
// visible dimensions with its side panel.
func Layout(boardW, boardH int) (w, h int) {
	return boardW*cellWidth + 2 + panelGap + panelWidth, core.Max(boardH+2, 22)
}

// DrawGame draws snap and the side panel onto s, starting at the top-left
// corner.
func DrawGame(s *core.Screen, snap engine.Snapshot, p Panel) {
	well := core.NewRect(0, 0, snap.Width*cellWidth+2, snap.Height+2)
	s.DrawBox(well, core.ColorWhite)

	for y, row := range snap.Cells {
		for x, c := range row {
			if c == core.ColorDefault {
				drawCell(s, x, y, emptyCell, core.ColorGray)
			} else {
				drawCell(s, x, y, blockCell, c)
			}
		}
	}
	for _, pt := range snap.Ghost {
		drawCell(s, pt.X, pt.Y, ghostCell, core.ColorGray)
	}
	for _, pt := range snap.Active {
		drawCell(s, pt.X, pt.Y, blockCell, snap.ActiveColor)
	}

	drawPanel(s, core.NewRect(well.Right()+panelGap, 0, panelWidth, well.H), snap, p)

	inner := well.Inset(1)
	switch {
	case snap.GameOver:
		drawGameOver(s, inner, snap)
	case snap.Paused:
		mid := inner.Y + inner.H/2
		s.FillRect(core.NewRect(inner.X, mid-1, inner.W, 3), core.Cell{Rune: ' '})
		s.DrawTextCentered(inner, mid, "PAUSED", core.ColorYellow)
	}
}

func drawCell(s *core.Screen, x, y int, glyph [cellWidth]rune, c core.Color) {
	sx := 1 + x*cellWidth
	for i, r := range glyph {
		s.SetCell(sx+i, 1+y, core.Cell{Rune: r, Color: c})
	}
}

func drawPanel(s *core.Screen, r core.Rect, snap engine.Snapshot, p Panel) {
	y := r.Y + 1
	s.DrawTextColor(r.X, y, "NEXT", core.ColorWhite)
	y += 2
	for _, k := range snap.Next {
		drawPreview(s, r.X, y, k)
		y += 3
	}
	if len(snap.Next) == 0 {
		y++
	}

	s.DrawText(r.X, y, fmt.Sprintf("Score  %d", snap.Score))
	s.DrawText(r.X, y+1, fmt.Sprintf("Level  %d", snap.Level))
	s.DrawText(r.X, y+2, fmt.Sprintf("Lines  %d", snap.Lines))
	y += 4

	title := "BEST"
	if p.Player != "" {
		title = "BEST " + p.Player
	}
	s.DrawTextColor(r.X, y, truncate(title, r.W), core.ColorWhite)
	y++
	if len(p.Best) == 0 {
		s.DrawTextColor(r.X, y, "no games yet", core.ColorGray)
		y++
	}
	for i, rec := range p.Best {
		if i == bestShown {
			break
		}
		s.DrawText(r.X, y, fmt.Sprintf("%d. %d", i+1, rec.Score))
		y++
	}

	if len(p.World) > 0 {
		top := p.World[0]
		s.DrawTextColor(r.X, y, "WORLD", core.ColorWhite)
		s.DrawText(r.X, y+1, truncate(fmt.Sprintf("%d %s", top.Score, top.Name), r.W))
	}
}

// drawPreview draws a piece in its spawn rotation, shifted so its top row
// lands on y.
func drawPreview(s *core.Screen, x, y int, k piece.Kind) {
	cells := piece.Cells(k, piece.Spawn)
	top := cells[0].Y
	for _, c := range cells {
		top = core.Min(top, c.Y)
	}
	for _, c := range cells {
		for i, r := range blockCell {
			s.SetCell(x+c.X*cellWidth+i, y+c.Y-top, core.Cell{Rune: r, Color: piece.Color(k)})
		}
	}
}

type textLine struct {
	text  string
	color core.Color
}

func drawGameOver(s *core.Screen, r core.Rect, snap engine.Snapshot) {
	lines := []textLine{
		{"GAME OVER", core.ColorRed},
		{fmt.Sprintf("score %d", snap.Score), core.ColorWhite},
	}
	if snap.SaveErr != nil {
		lines = append(lines, textLine{"score not saved", core.ColorYellow})
	}
	lines = append(lines,
		textLine{},
		textLine{"ENTER play again", core.ColorGray},
		textLine{"Q quit", core.ColorGray},
	)

	top := r.Y + (r.H-len(lines))/2
	s.FillRect(core.NewRect(r.X, top-1, r.W, len(lines)+2), core.Cell{Rune: ' '})
	for i, l := range lines {
		s.DrawTextCentered(r, top+i, l.text, l.color)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
