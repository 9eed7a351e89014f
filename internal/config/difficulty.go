package config

import "github.com/vovakirdan/arcade-portal/internal/core"

// Playability floors applied after difficulty scaling.
const (
	MinGap     = 4
	MinSpacing = 15
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0, 1),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = core.ClampF(level, 0, 1)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the current difficulty level (0.0 to 1.0). It rises
// linearly from the initial level to 1.0 as score or ticks approach MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(core.Max(d.cfg.Progression.MaxAt, 1))
	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		progress = float64(score) / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0, 1)
	return d.initialLevel + progress*(1-d.initialLevel)
}

// Speed scales base from base to base*(1+SpeedMultiplier).
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize shrinks a gap by up to GapReduction, never below MinGap.
func (d *DifficultyManager) GapSize(base, score, ticks int) int {
	cut := int(d.Level(score, ticks) * float64(d.cfg.Scaling.GapReduction))
	return core.Max(base-cut, MinGap)
}

// Spacing shrinks obstacle spacing by up to SpacingReduction, never below
// MinSpacing.
func (d *DifficultyManager) Spacing(base, score, ticks int) int {
	cut := int(d.Level(score, ticks) * float64(d.cfg.Scaling.SpacingReduction))
	return core.Max(base-cut, MinSpacing)
}
