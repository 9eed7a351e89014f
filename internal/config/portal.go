package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PortalConfig holds the portal-wide settings.
type PortalConfig struct {
	TickRate      int    `yaml:"tick_rate" env:"ARCADE_TICK_RATE"`
	DBPath        string `yaml:"db_path" env:"ARCADE_DB"`
	Dark          bool   `yaml:"dark" env:"ARCADE_DARK"`
	CompactWidth  int    `yaml:"compact_width" env:"ARCADE_COMPACT_WIDTH"`
	Difficulty    string `yaml:"difficulty" env:"ARCADE_DIFFICULTY"`
	GameConfigDir string `yaml:"game_config_dir" env:"ARCADE_GAME_CONFIG_DIR"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"ARCADE_SCREENSHOT_DIR"`
	LogLevel      string `yaml:"log_level" env:"ARCADE_LOG_LEVEL"`

	SSH SSHConfig `yaml:"ssh"`
	API APIConfig `yaml:"api"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr" env:"ARCADE_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"ARCADE_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"ARCADE_SSH_IDLE_TIMEOUT"`
	MaxTimeout  time.Duration `yaml:"max_timeout" env:"ARCADE_SSH_MAX_TIMEOUT"`
}

// APIConfig configures the HTTP catalog API.
type APIConfig struct {
	Addr           string        `yaml:"addr" env:"ARCADE_API_ADDR"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"ARCADE_API_REQUEST_TIMEOUT"`
}

// DefaultPortalConfig returns the embedded portal defaults.
func DefaultPortalConfig() PortalConfig {
	var cfg PortalConfig
	if err := yaml.Unmarshal(defaultPortalYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded arcade.yaml: %v", err))
	}
	return cfg
}

// LoadPortal builds the portal configuration in layers:
//
//  1. embedded defaults
//  2. the first arcade.yaml found: path -> ~/.arcade/arcade.yaml -> ./configs/arcade.yaml
//  3. a .env file in the working directory, if present
//  4. ARCADE_* environment variables
//
// An explicit path must exist.
func LoadPortal(path string) (PortalConfig, error) {
	cfg := DefaultPortalConfig()

	file, err := findPortalFile(path)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", file, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: cannot load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func findPortalFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return path, nil
	}
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".arcade", "arcade.yaml"))
	}
	candidates = append(candidates, filepath.Join("configs", "arcade.yaml"))
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}

// Validate checks value ranges.
func (c PortalConfig) Validate() error {
	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1-240", c.TickRate)
	}
	if c.CompactWidth < 0 {
		return fmt.Errorf("config: compact_width must not be negative")
	}
	if !ValidPreset(c.Difficulty) {
		return fmt.Errorf("config: unknown difficulty %q", c.Difficulty)
	}
	return nil
}
