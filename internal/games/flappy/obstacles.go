package flappy

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the player to pass through.
type Pipe struct {
	X         int  // Horizontal position (left edge)
	GapY      int  // Y position where gap starts (top of gap)
	GapHeight int  // Height of the passable gap
	Passed    bool // Whether the player has passed this pipe (for scoring)
}

// PipeManager handles spawning, movement, and removal of pipes.
// Pipes move at a fractional speed; the offset accumulates until it adds up
// to whole cells.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	fieldH     int // rows above the ground
	carry      float64
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a pipe manager for a field of screenW×fieldH cells.
func NewPipeManager(seed int64, screenW, fieldH int, cfg *config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	return &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		rng:        rand.New(rand.NewSource(seed)),
		screenW:    screenW,
		fieldH:     fieldH,
		cfg:        cfg,
		difficulty: diff,
	}
}

// Update moves pipes left and spawns new ones as needed.
// Returns the number of pipes the player passed this tick.
func (pm *PipeManager) Update(playerX, score, ticks int) int {
	pm.carry += pm.difficulty.Speed(pm.cfg.Physics.BaseSpeed, score, ticks)
	shift := int(pm.carry)
	pm.carry -= float64(shift)

	pipeWidth := pm.cfg.Obstacles.PipeWidth
	passed := 0
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		p.X -= shift
		if !p.Passed && p.X+pipeWidth <= playerX {
			p.Passed = true
			passed++
		}
		if p.X+pipeWidth > 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	spacing := pm.difficulty.Spacing(pm.cfg.Obstacles.PipeSpacing, score, ticks)
	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X <= pm.screenW-spacing {
		pm.spawn(score, ticks)
	}

	return passed
}

// spawn creates a pipe at the right edge with a random gap.
func (pm *PipeManager) spawn(score, ticks int) {
	obs := pm.cfg.Obstacles
	minGap := obs.MinGapSize
	maxGap := core.Max(pm.difficulty.GapSize(obs.MaxGapSize, score, ticks), minGap)

	gapHeight := minGap + pm.rng.Intn(maxGap-minGap+1)

	minGapY := obs.TopMargin
	maxGapY := core.Max(pm.fieldH-obs.BottomMargin-gapHeight, minGapY)
	gapY := minGapY + pm.rng.Intn(maxGapY-minGapY+1)

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.screenW,
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given rectangle collides with any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	w := pm.cfg.Obstacles.PipeWidth
	for _, p := range pm.pipes {
		top := core.NewRect(p.X, 0, w, p.GapY)
		bottomY := p.GapY + p.GapHeight
		bottom := core.NewRect(p.X, bottomY, w, pm.fieldH-bottomY)
		if r.Intersects(top) || r.Intersects(bottom) {
			return true
		}
	}
	return false
}
