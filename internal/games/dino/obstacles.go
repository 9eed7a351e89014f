package dino

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

// ObstacleKind distinguishes ground obstacles from flying ones.
type ObstacleKind int

const (
	KindCactus ObstacleKind = iota
	KindBird
)

// Obstacle is something the runner must jump over or duck under.
type Obstacle struct {
	Kind   ObstacleKind
	X      int // Horizontal position (left edge)
	Width  int
	Height int
	Alt    int // Cells between the ground and the obstacle's bottom edge
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect(groundY int) core.Rect {
	return core.NewRect(o.X, groundY-o.Alt-o.Height, o.Width, o.Height)
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	obstacles  []Obstacle
	rng        *rand.Rand
	screenW    int
	nextSpawnX int // X position where the next obstacle will spawn
	carry      float64
	birdAlt    int
	cfg        *config.DinoConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates an obstacle manager. Birds fly birdAlt cells
// above the ground: high enough to clear a ducking runner, low enough to hit
// a standing one.
func NewObstacleManager(seed int64, screenW, birdAlt int, cfg *config.DinoConfig, diff *config.DifficultyManager) *ObstacleManager {
	return &ObstacleManager{
		obstacles:  make([]Obstacle, 0, 8),
		rng:        rand.New(rand.NewSource(seed)),
		screenW:    screenW,
		nextSpawnX: screenW + cfg.Obstacles.MinSpacing,
		birdAlt:    birdAlt,
		cfg:        cfg,
		difficulty: diff,
	}
}

// Update moves obstacles left and spawns new ones as needed.
func (om *ObstacleManager) Update(score, ticks int) {
	om.carry += om.difficulty.Speed(om.cfg.Physics.BaseSpeed, score, ticks)
	shift := int(om.carry)
	om.carry -= float64(shift)

	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		o.X -= shift
		if o.X+o.Width > 0 {
			kept = append(kept, o)
		}
	}
	om.obstacles = kept

	om.nextSpawnX -= shift
	if om.nextSpawnX <= om.screenW {
		om.spawn(score, ticks)
	}
}

// spawn creates a cactus or a bird at the spawn position.
func (om *ObstacleManager) spawn(score, ticks int) {
	obs := om.cfg.Obstacles

	var o Obstacle
	if score >= obs.BirdMinScore && om.rng.Float64() < obs.BirdChance {
		o = Obstacle{Kind: KindBird, X: om.nextSpawnX, Width: 3, Height: 1, Alt: om.birdAlt}
	} else {
		o = Obstacle{
			Kind:   KindCactus,
			X:      om.nextSpawnX,
			Width:  between(om.rng, obs.MinWidth, obs.MaxWidth),
			Height: between(om.rng, obs.MinHeight, obs.MaxHeight),
		}
	}
	om.obstacles = append(om.obstacles, o)

	spacing := core.Max(om.difficulty.Spacing(obs.MaxSpacing, score, ticks), obs.MinSpacing)
	om.nextSpawnX += o.Width + between(om.rng, obs.MinSpacing, spacing)
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Obstacles returns the current list of obstacles.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// CheckCollision tests if the given rectangle collides with any obstacle.
func (om *ObstacleManager) CheckCollision(r core.Rect, groundY int) bool {
	for _, o := range om.obstacles {
		if r.Intersects(o.Rect(groundY)) {
			return true
		}
	}
	return false
}
