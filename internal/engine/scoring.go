package engine

// lineScores is the base award per simultaneous line clear, multiplied by
// the level in effect before the clear.
var lineScores = [...]uint64{0, 100, 300, 500, 800}

// Drop bonuses per row travelled.
const (
	softDropPoints = 1
	hardDropPoints = 2
)

// LineClearScore returns the points for clearing n rows at level.
func LineClearScore(n int, level uint) uint64 {
	if n < 0 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n] * uint64(level)
}

// applyClear awards points for n cleared rows and advances the level.
func (e *Engine) applyClear(n int) {
	e.lastClear = n
	if n == 0 {
		return
	}
	e.score += LineClearScore(n, e.level)
	e.lines += uint(n)
	if next := e.rules.Gravity.LevelFor(e.lines); next > e.level {
		e.logger.Debug("level up", "level", next, "lines", e.lines)
		e.level = next
	}
}
