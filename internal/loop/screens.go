package loop

import (
	"fmt"
)

const (
	clearScreen = "\033[0m\033[H\033[2J"
	clearLine   = "\033[2K"
	title       = "Balloon Shooter"
)

// drawUI writes the title, status line and best score around the playfield,
// and the game-over overlay on top of it.
func (g *Game) drawUI() {
	l := g.layout
	s := g.state.Session

	// Canvas rows are OffsetRow+1 .. OffsetRow+CanvasRows (1-based).
	g.writeLine(l.OffsetRow-1, title)
	g.writeLine(l.OffsetRow, fmt.Sprintf("Score: %d   Level: %d   Lives: %d", s.Score, s.Level, s.Lives))
	g.writeLine(l.OffsetRow+l.CanvasRows+1, fmt.Sprintf("Best Score: %d", s.BestScore))

	if s.GameOver {
		g.drawGameOver()
	}
}

// drawGameOver draws the game over screen centered on the playfield.
func (g *Game) drawGameOver() {
	l := g.layout
	s := g.state.Session
	centerRow := l.OffsetRow + l.CanvasRows/2

	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Best Score: %d", s.BestScore),
		"",
		"Press ENTER or R to restart, Q to quit",
	}
	top := centerRow - len(lines)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		g.cw.WriteAt(centeredCol(l.TermCols, line), top+i, line)
	}
}

// writeLine clears a terminal row and writes text centered on it.
// Rows outside the terminal are skipped.
func (g *Game) writeLine(row int, text string) {
	if row < 1 || row > g.layout.TermRows {
		return
	}
	g.cw.WriteAt(1, row, clearLine)
	g.cw.WriteAt(centeredCol(g.layout.TermCols, text), row, text)
}

// centeredCol returns the 1-based column that centers text on a row of width cols.
func centeredCol(cols int, text string) int {
	return max((cols-len(text))/2+1, 1)
}
