package breakout

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "breakout"

// BestKey is the prefs key for the best score.
const BestKey = "breakout_best"

// Visual characters for rendering
const (
	PaddleChar = '▀'
	BallChar   = '●'
)

// Positions are fixed-point so the simulation stays deterministic:
// one cell is Scale units.
const Scale = 1000

// Fixed is a fixed-point coordinate or velocity.
type Fixed int

// ToFixed converts a cell coordinate to fixed-point.
func ToFixed(cell int) Fixed { return Fixed(cell * Scale) }

// Cell truncates to a cell coordinate.
func (f Fixed) Cell() int {
	if f < 0 {
		return -int((-f + Scale - 1) / Scale)
	}
	return int(f) / Scale
}

func (f Fixed) abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Tuning
const (
	startLives   = 3
	paddleWidth  = 9
	paddleSpeed  = 2 // cells per tick while a direction is held
	baseSpeed    = 450
	speedPerWall = 75
	maxSpeed     = 900 // Stays under one cell per tick
	wallTop      = 3   // First brick row
	clearBonus   = 100
)

// Game implements Breakout.
type Game struct {
	wall    Wall
	brickW  int
	brickX  int // Left edge of the wall
	paddleX int // Left edge
	paddleY int
	target  int // Pointer target for the paddle center, -1 if none

	ballX, ballY   Fixed
	ballVX, ballVY Fixed
	serving        bool

	score    int
	best     int
	lives    int
	wallNum  int
	speed    Fixed
	gameOver bool
	paused   bool

	rng     *rand.Rand
	runtime core.RuntimeConfig
}

// New creates a new Breakout game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.score = 0
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.lives = startLives
	g.wallNum = 0
	g.speed = baseSpeed
	g.gameOver = false
	g.paused = false
	g.target = -1

	g.paddleY = cfg.ScreenH - 2
	g.paddleX = (cfg.ScreenW - paddleWidth) / 2
	g.loadWall()
	g.serve()
}

// Resize adopts a new canvas size: the wall is re-laid out with the bricks
// left standing, and the paddle and ball are pulled back into view.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.layoutWall()
	g.paddleY = h - 2
	g.paddleX = core.Clamp(g.paddleX, 0, core.Max(0, w-paddleWidth))
	if g.serving {
		g.followPaddle()
		return
	}
	g.ballX = min(g.ballX, ToFixed(w)-1)
	g.ballY = min(g.ballY, ToFixed(g.paddleY-1))
}

// loadWall places the current wall centered on the screen.
func (g *Game) loadWall() {
	g.wall = wallAt(g.wallNum)
	g.layoutWall()
}

func (g *Game) layoutWall() {
	g.brickW = core.Max(1, g.runtime.ScreenW/core.Max(1, g.wall.Cols()))
	g.brickX = (g.runtime.ScreenW - g.brickW*g.wall.Cols()) / 2
}

// serve parks the ball on the paddle until launch.
func (g *Game) serve() {
	g.serving = true
	g.ballVX, g.ballVY = 0, 0
	g.followPaddle()
}

func (g *Game) followPaddle() {
	g.ballX = ToFixed(g.paddleX+paddleWidth/2) + Scale/2
	g.ballY = ToFixed(g.paddleY-1) + Scale/2
}

func (g *Game) launch() {
	g.serving = false
	g.ballVY = -g.speed
	g.ballVX = g.speed / 2
	if g.rng.Intn(2) == 0 {
		g.ballVX = -g.ballVX
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	tapped := len(in.Points()) > 0
	g.movePaddle(in)

	if g.serving {
		g.followPaddle()
		if tapped || in.Pressed(core.ActionJump) || in.Pressed(core.ActionConfirm) || in.Pressed(core.ActionUp) {
			g.launch()
		}
		return core.StepResult{State: g.State()}
	}

	g.moveBall()
	return core.StepResult{State: g.State()}
}

// movePaddle applies held directions and pointer taps. A key cancels any
// pointer target.
func (g *Game) movePaddle(in core.InputFrame) {
	if pts := in.Points(); len(pts) > 0 {
		g.target = pts[len(pts)-1].X
	}

	switch {
	case in.Has(core.ActionLeft):
		g.target = -1
		g.paddleX -= paddleSpeed
	case in.Has(core.ActionRight):
		g.target = -1
		g.paddleX += paddleSpeed
	case g.target >= 0:
		diff := g.target - (g.paddleX + paddleWidth/2)
		g.paddleX += core.Clamp(diff, -paddleSpeed, paddleSpeed)
		if core.Abs(diff) <= paddleSpeed {
			g.target = -1
		}
	}
	g.paddleX = core.Clamp(g.paddleX, 0, core.Max(0, g.runtime.ScreenW-paddleWidth))
}

// moveBall advances the ball and resolves walls, bricks and the paddle.
func (g *Game) moveBall() {
	prevX, prevY := g.ballX, g.ballY
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	right := ToFixed(g.runtime.ScreenW) - 1
	switch {
	case g.ballX < 0:
		g.ballX = -g.ballX
		g.ballVX = g.ballVX.abs()
	case g.ballX > right:
		g.ballX = 2*right - g.ballX
		g.ballVX = -g.ballVX.abs()
	}
	if top := ToFixed(1); g.ballY < top {
		g.ballY = 2*top - g.ballY
		g.ballVY = g.ballVY.abs()
	}

	g.hitBrick(prevX, prevY)
	g.hitPaddle()

	if g.ballY.Cell() > g.paddleY {
		g.miss()
	}
}

// hitBrick damages the brick under the ball and puts the ball back where it
// came from. Entering from another row bounces vertically, from the side
// horizontally.
func (g *Game) hitBrick(prevX, prevY Fixed) {
	row := g.ballY.Cell() - wallTop
	cx := g.ballX.Cell() - g.brickX
	if row < 0 || row >= len(g.wall) || cx < 0 {
		return
	}
	col := cx / g.brickW
	if col >= g.wall.Cols() {
		return
	}
	b := &g.wall[row][col]
	if !b.Alive() {
		return
	}

	if prevY.Cell()-wallTop != row {
		g.ballVY = -g.ballVY
	} else {
		g.ballVX = -g.ballVX
	}
	g.ballX, g.ballY = prevX, prevY

	if b.Type == BrickSolid {
		return
	}
	b.HP--
	if b.HP > 0 {
		return
	}
	g.score += b.Points
	if g.wall.Breakable() == 0 {
		g.clearWall()
	}
}

// hitPaddle bounces a falling ball off the paddle; edge hits angle it more.
func (g *Game) hitPaddle() {
	if g.ballVY <= 0 || g.ballY.Cell() != g.paddleY {
		return
	}
	left := ToFixed(g.paddleX)
	width := ToFixed(paddleWidth)
	if g.ballX < left || g.ballX >= left+width {
		return
	}

	// -Scale at the left edge to +Scale at the right.
	offset := (g.ballX - left - width/2) * Scale / (width / 2)
	g.ballVX = offset * g.speed / Scale
	g.ballVY = -g.speed
	if g.ballVX.abs() > g.speed*3/4 {
		g.ballVY = -g.speed / 2
	}
	g.ballY = ToFixed(g.paddleY-1) + Scale/2
}

func (g *Game) miss() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score)
		return
	}
	g.serve()
}

// clearWall awards the bonus and brings in the next, faster wall.
func (g *Game) clearWall() {
	g.wallNum++
	g.score += clearBonus * g.wallNum
	g.speed = min(g.speed+speedPerWall, maxSpeed)
	g.loadWall()
	g.serve()
}

// rowColors tint normal bricks by row.
var rowColors = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightBlue,
}

// Render draws the wall, paddle, ball and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawText(14, 0, fmt.Sprintf("Lives: %d", g.lives))
	dst.DrawText(25, 0, fmt.Sprintf("Wall: %d", g.wallNum+1))
	dst.DrawText(36, 0, fmt.Sprintf("Best: %d", core.Max(g.best, g.score)))

	for r, row := range g.wall {
		for c, b := range row {
			if !b.Alive() {
				continue
			}
			ch, color := '█', rowColors[r%len(rowColors)]
			switch {
			case b.Type == BrickSolid:
				color = core.ColorGray
			case b.Type == BrickHard && b.HP > 1:
				ch, color = '▓', core.ColorBrightWhite
			case b.Type == BrickHard:
				ch, color = '▒', core.ColorWhite
			}
			x := g.brickX + c*g.brickW
			for i := range g.brickW {
				// Leave a gap between bricks when there is room.
				if g.brickW > 2 && i == g.brickW-1 {
					break
				}
				dst.SetColor(x+i, wallTop+r, ch, color)
			}
		}
	}

	for i := range paddleWidth {
		dst.SetColor(g.paddleX+i, g.paddleY, PaddleChar, core.ColorBrightCyan)
	}
	dst.SetColor(g.ballX.Cell(), g.ballY.Cell(), BallChar, core.ColorBrightWhite)

	if g.serving && !g.gameOver {
		dst.DrawTextCenteredColor(g.paddleY-3, "Space or tap to launch", core.ColorGray)
	}
	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
