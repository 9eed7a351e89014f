package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	var flappy FlappyConfig
	if err := yaml.Unmarshal(DefaultYAML("flappy"), &flappy); err != nil {
		t.Fatalf("flappy.yaml: %v", err)
	}
	if flappy != DefaultFlappyConfig() {
		t.Errorf("flappy.yaml = %+v, builtin = %+v", flappy, DefaultFlappyConfig())
	}

	var dino DinoConfig
	if err := yaml.Unmarshal(DefaultYAML("dino"), &dino); err != nil {
		t.Fatalf("dino.yaml: %v", err)
	}
	if dino != DefaultDinoConfig() {
		t.Errorf("dino.yaml = %+v, builtin = %+v", dino, DefaultDinoConfig())
	}

	var pong PongConfig
	if err := yaml.Unmarshal(DefaultYAML("pong"), &pong); err != nil {
		t.Fatalf("pong.yaml: %v", err)
	}
	if pong != DefaultPongConfig() {
		t.Errorf("pong.yaml = %+v, builtin = %+v", pong, DefaultPongConfig())
	}

	if DefaultYAML("snake") != nil {
		t.Error("snake has no tuning file")
	}
}

func TestLoadGameFromDir(t *testing.T) {
	dir := t.TempDir()
	data := []byte("physics:\n  gravity: 0.5\n")
	if err := os.WriteFile(filepath.Join(dir, "flappy.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(dir)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, want 0.5", cfg.Physics.Gravity)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Obstacles.PipeWidth != DefaultFlappyConfig().Obstacles.PipeWidth {
		t.Errorf("pipe width = %d, want default", cfg.Obstacles.PipeWidth)
	}
}

func TestLoadGameErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDino(dir); err == nil {
		t.Error("expected error for missing file in explicit dir")
	}

	if err := os.WriteFile(filepath.Join(dir, "pong.yaml"), []byte("physics: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPong(dir)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg != DefaultPongConfig() {
		t.Error("failed load should return defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultFlappyConfig().Difficulty

	ApplyPreset(&d, DifficultyHard)
	if !d.Enabled || d.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", d)
	}

	ApplyPreset(&d, "")
	if d.InitialLevel != 0.7 {
		t.Error("empty preset should not change the config")
	}

	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestValidPreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if !ValidPreset(name) {
			t.Errorf("ValidPreset(%q) = false", name)
		}
	}
	if ValidPreset("nightmare") {
		t.Error("ValidPreset(nightmare) = true")
	}
}

func TestDifficultyManagerLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: ProgressionScore, MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, GapReduction: 4, SpacingReduction: 20},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	if got := dm.Speed(1.0, 100, 0); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Speed at max = %v, want 2.0", got)
	}
	if got := dm.GapSize(6, 100, 0); got != MinGap {
		t.Errorf("GapSize clamps to %d, got %d", MinGap, got)
	}
	if got := dm.Spacing(40, 100, 0); got != 20 {
		t.Errorf("Spacing = %d, want 20", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() || dm.Level(100, 0) != 0.2 {
		t.Error("disabled manager should stay at the initial level")
	}
	dm.SetInitialLevel(3)
	if dm.Level(0, 0) != 1 {
		t.Error("SetInitialLevel should clamp to 1")
	}
}

func TestDifficultyManagerTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressionTime, MaxAt: 600},
	})
	if got := dm.Level(10000, 300); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level at half time = %v, want 0.5", got)
	}
}

func TestDefaultPortalConfig(t *testing.T) {
	cfg := DefaultPortalConfig()
	if cfg.TickRate != 60 || cfg.CompactWidth != 60 || !cfg.Dark {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SSH.Addr != ":23234" || cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("unexpected ssh defaults: %+v", cfg.SSH)
	}
	if cfg.API.RequestTimeout != 10*time.Second {
		t.Errorf("unexpected api defaults: %+v", cfg.API)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadPortalLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	data := []byte("tick_rate: 30\ndark: false\nssh:\n  addr: :2222\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARCADE_TICK_RATE", "45")
	t.Setenv("ARCADE_API_ADDR", "127.0.0.1:9000")

	cfg, err := LoadPortal(path)
	if err != nil {
		t.Fatalf("LoadPortal() failed: %v", err)
	}
	if cfg.TickRate != 45 {
		t.Errorf("env should override file: tick_rate = %d", cfg.TickRate)
	}
	if cfg.Dark {
		t.Error("file should override default dark")
	}
	if cfg.SSH.Addr != ":2222" {
		t.Errorf("ssh addr = %q", cfg.SSH.Addr)
	}
	if cfg.API.Addr != "127.0.0.1:9000" {
		t.Errorf("api addr = %q", cfg.API.Addr)
	}
	if cfg.CompactWidth != 60 {
		t.Errorf("missing keys keep defaults: compact_width = %d", cfg.CompactWidth)
	}
}

func TestLoadPortalErrors(t *testing.T) {
	if _, err := LoadPortal(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}

	path := filepath.Join(t.TempDir(), "arcade.yaml")
	if err := os.WriteFile(path, []byte("difficulty: nightmare\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPortal(path); err == nil {
		t.Error("expected validation error")
	}

	t.Setenv("ARCADE_TICK_RATE", "fast")
	if _, err := LoadPortal(""); err == nil {
		t.Error("expected env parse error")
	}
}
