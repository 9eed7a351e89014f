package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

const (
	cellWidth  = 6 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3

	boardW     = Size*cellWidth + 1
	boardH     = Size*cellHeight + 1
	minScreenW = boardW + 2
	minScreenH = boardH + hudHeight + 1
)

// tileColor picks a color per tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2, 4:
		return core.ColorWhite
	case 8, 16:
		return core.ColorOrange
	case 32, 64:
		return core.ColorBrightRed
	case 128, 256:
		return core.ColorBrightYellow
	case 512, 1024:
		return core.ColorYellow
	default:
		return core.ColorBrightMagenta
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Please resize terminal")
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight + 1

	dst.DrawTextCenteredColor(0, "2048", core.ColorBrightYellow)
	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))
	bestStr := fmt.Sprintf("Best: %d", core.Max(g.best, g.score))
	dst.DrawText(boardX+boardW-len(bestStr), 1, bestStr)

	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)

	switch {
	case g.paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case g.showWin:
		dst.DrawMessage("You reached 2048!", "Enter: keep going")
	case g.gameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Max tile: %d  |  Press R to restart", MaxTile(g.board)))
	}
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := 0; y <= Size; y++ {
		for x := 0; x <= Size; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColor(px, py, junction(x, y), core.ColorGray)
			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// junction returns the box-drawing rune for grid intersection (x, y).
func junction(x, y int) rune {
	top, bottom := y == 0, y == Size
	left, right := x == 0, x == Size
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws tile values centered in their cells.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for y := range Size {
		for x := range Size {
			v := g.board[y][x]
			if v == 0 {
				continue
			}
			s := strconv.Itoa(v)
			color := tileColor(v)
			if g.popLeft > 0 && g.lastSpawn == (Cell{X: x, Y: y}) {
				color = core.ColorBrightGreen
			}
			cx := boardX + x*cellWidth + 1 + core.Max(0, (cellWidth-1-len(s))/2)
			cy := boardY + y*cellHeight + 1
			dst.DrawTextColor(cx, cy, s, color)
		}
	}
}
