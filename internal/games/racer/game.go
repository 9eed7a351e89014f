// Package racer implements a top-down lane racer: change lanes to weave
// through slower traffic while the road speeds up.
package racer

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// ID is the registry and catalog id.
const ID = "racer"

// BestKey is the prefs key for the best score.
const BestKey = "racer_best"

// Road geometry.
const (
	Lanes = 3
	laneW = 7
	roadW = Lanes*laneW + 2 // Including curbs
	carW  = 3
	carH  = 2
)

// Speeds are in rows per tick.
const (
	startCruise  = 0.25
	maxCruise    = 0.6
	cruiseGrowth = 1.0 / 4000 // Cruise speed gained per row driven
	gasFactor    = 1.6
	minSpeed     = 0.15
	accel        = 0.006
	brakeDecel   = 0.012
	drift        = 0.004
	trafficSpeed = 0.1
	minGap       = 8
	maxGap       = 16
)

// Car is a traffic car. Y is the top row in screen coordinates.
type Car struct {
	Lane int
	Y    float64
}

// Game implements the lane racer.
type Game struct {
	lane     int
	speed    float64
	distance float64

	traffic   []Car
	nextSpawn float64 // Distance at which the next car appears
	lastLane  int

	best     int
	gameOver bool
	paused   bool

	rng       *rand.Rand
	runtime   core.RuntimeConfig
	tickCount int
}

// New creates a new racer game.
func New() *Game {
	return &Game{}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.lane = Lanes / 2
	g.speed = startCruise
	g.distance = 0
	g.traffic = g.traffic[:0]
	g.nextSpawn = minGap
	g.lastLane = -1
	g.best = core.LoadBest(cfg.Prefs, BestKey)
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
}

// Resize adopts a new canvas size. Lanes and the player car are placed
// relative to the screen, so traffic just keeps coming.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
}

// roadX is the left curb column.
func (g *Game) roadX() int {
	return (g.runtime.ScreenW - roadW) / 2
}

// laneX is the left column of a car in lane.
func (g *Game) laneX(lane int) int {
	return g.roadX() + 1 + lane*laneW + (laneW-carW)/2
}

func (g *Game) playerY() int {
	return g.runtime.ScreenH - carH - 1
}

func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.laneX(g.lane), g.playerY(), carW, carH)
}

func (g *Game) carRect(c Car) core.Rect {
	return core.NewRect(g.laneX(c.Lane), int(c.Y), carW, carH)
}

// cruise is the speed the car settles at without gas or brake.
func (g *Game) cruise() float64 {
	return core.ClampF(startCruise+g.distance*cruiseGrowth, startCruise, maxCruise)
}

func (g *Game) score() int {
	return int(g.distance)
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

	g.tickCount++

	if in.Pressed(core.ActionLeft) {
		g.lane = core.Max(0, g.lane-1)
	}
	if in.Pressed(core.ActionRight) {
		g.lane = core.Min(Lanes-1, g.lane+1)
	}

	g.throttle(in)
	g.distance += g.speed

	g.moveTraffic()
	if g.distance >= g.nextSpawn {
		g.spawn()
	}

	player := g.playerRect()
	for _, c := range g.traffic {
		if g.carRect(c).Intersects(player) {
			g.crash()
			break
		}
	}

	return core.StepResult{State: g.State()}
}

// throttle applies gas and brake; with neither the car drifts back to
// cruise speed.
func (g *Game) throttle(in core.InputFrame) {
	cruise := g.cruise()
	switch {
	case in.Has(core.ActionDuck) || in.Has(core.ActionDown):
		g.speed -= brakeDecel
	case in.Has(core.ActionUp) || in.Has(core.ActionJump):
		g.speed += accel
	case g.speed > cruise:
		g.speed = max(cruise, g.speed-drift)
	default:
		g.speed = min(cruise, g.speed+drift)
	}
	g.speed = core.ClampF(g.speed, minSpeed, cruise*gasFactor)
}

// moveTraffic scrolls traffic by the speed difference and drops cars that
// left the bottom of the screen.
func (g *Game) moveTraffic() {
	rel := g.speed - trafficSpeed
	kept := g.traffic[:0]
	for _, c := range g.traffic {
		c.Y += rel
		if int(c.Y) < g.runtime.ScreenH {
			kept = append(kept, c)
		}
	}
	g.traffic = kept
}

// spawn adds a car above the screen. Consecutive cars never take the same
// lane, so a gap always stays open.
func (g *Game) spawn() {
	lane := g.rng.Intn(Lanes)
	if lane == g.lastLane {
		lane = (lane + 1 + g.rng.Intn(Lanes-1)) % Lanes
	}
	g.lastLane = lane
	g.traffic = append(g.traffic, Car{Lane: lane, Y: -carH})
	g.nextSpawn = g.distance + float64(minGap+g.rng.Intn(maxGap-minGap+1))
}

func (g *Game) crash() {
	g.gameOver = true
	g.best, _ = core.SaveBest(g.runtime.Prefs, BestKey, g.score())
}

// Render draws the road, traffic, the player's car and the HUD.
func (g *Game) Render(dst *core.Screen) {
	rx := g.roadX()
	h := dst.Height()
	dst.DrawVLine(rx, 0, h, '▌')
	dst.DrawVLine(rx+roadW-1, 0, h, '▐')

	// Lane markers scroll with the distance driven.
	offset := int(g.distance) % 4
	for l := 1; l < Lanes; l++ {
		x := rx + l*laneW
		for y := 0; y < h; y++ {
			if (y-offset+4)%4 < 2 {
				dst.SetColor(x, y, '┆', core.ColorGray)
			}
		}
	}

	for _, c := range g.traffic {
		g.drawCar(dst, g.carRect(c), core.ColorBrightRed)
	}
	g.drawCar(dst, g.playerRect(), core.ColorBrightCyan)

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score()))
	dst.DrawText(1, 1, fmt.Sprintf("Best:  %d", core.Max(g.best, g.score())))
	dst.DrawText(1, 2, fmt.Sprintf("Speed: %d", int(g.speed*200)))

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if g.gameOver {
		dst.DrawMessage("CRASHED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score()))
	}
}

func (g *Game) drawCar(dst *core.Screen, r core.Rect, c core.Color) {
	dst.DrawTextColor(r.X, r.Y, "▄█▄", c)
	dst.DrawTextColor(r.X, r.Y+1, "█▀█", c)
}

// State returns the current game state. The score is the distance driven.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.RegisterGame(ID, func() registry.Game {
		return New()
	})
}
