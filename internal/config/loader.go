package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads Flappy Bird configuration.
// Search order: dir/flappy.yaml -> ~/.arcade/configs/flappy.yaml ->
// ./configs/flappy.yaml -> embedded default.
func LoadFlappy(dir string) (FlappyConfig, error) {
	return loadGame("flappy", dir, DefaultFlappyConfig())
}

// LoadDino loads Dino Runner configuration. Same search order as LoadFlappy.
func LoadDino(dir string) (DinoConfig, error) {
	return loadGame("dino", dir, DefaultDinoConfig())
}

// LoadPong loads Pong configuration. Same search order as LoadFlappy.
func LoadPong(dir string) (PongConfig, error) {
	return loadGame("pong", dir, DefaultPongConfig())
}

// loadGame resolves <gameID>.yaml along the search path. A file in an
// explicit dir must exist and parse; the user and local directories are
// skipped when missing or broken. Values absent from the file keep the
// built-in defaults.
func loadGame[T any](gameID, dir string, fallback T) (T, error) {
	filename := gameID + ".yaml"

	if dir != "" {
		path := filepath.Join(dir, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			return fallback, fmt.Errorf("config: cannot read %s: %w", path, err)
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("config: cannot parse %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := fallback
	if err := yaml.Unmarshal(DefaultYAML(gameID), &cfg); err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
