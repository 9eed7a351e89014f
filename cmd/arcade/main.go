// arcade is a terminal game portal: a catalog of casual games you can play
// locally, over SSH, or browse through a JSON API.
//
// Usage:
//
//	arcade                   - Open the portal (same as arcade menu)
//	arcade list              - List the catalog
//	arcade play <game>       - Open the portal on a game
//	arcade open <#route>     - Open the portal on a route, e.g. '#snake'
//	arcade scores [game]     - Show high scores
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the HTTP catalog API
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--config <path>     - Portal config file (arcade.yaml)
//	--difficulty <name> - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	// Import games to register them
	_ "github.com/vovakirdan/arcade-portal/internal/games/all"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Portal - casual games in your terminal",
	Long: `Arcade Portal is a terminal game portal: pick a category, pick a
game, play. Phones and narrow terminals get an on-screen control pad.

Available commands:
  menu     - Open the portal (default)
  play     - Open the portal on a game
  open     - Open the portal on a route
  list     - Show the catalog
  scores   - View high scores
  serve    - Start SSH server for remote play
  api      - Start the HTTP catalog API

Examples:
  arcade
  arcade play snake
  arcade open '#tetris'
  arcade list --category puzzle
  arcade serve --ssh :2222
  arcade scores snake`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to portal config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// loadConfig reads the portal config and applies the global flags on top.
func loadConfig() (config.PortalConfig, error) {
	cfg, err := config.LoadPortal(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagDifficulty != "" {
		cfg.Difficulty = flagDifficulty
	}
	return cfg, cfg.Validate()
}

// newLogger builds a logger at the configured level writing to w.
func newLogger(w io.Writer, cfg config.PortalConfig, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// fileLogger logs next to the database while a full-screen program owns
// the terminal. It falls back to discarding when the file cannot be opened.
func fileLogger(cfg config.PortalConfig) (*log.Logger, func()) {
	path, err := storage.ExpandPath(cfg.DBPath)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	path = filepath.Join(filepath.Dir(path), "arcade.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort close of the log file
	return newLogger(f, cfg, "arcade"), func() { f.Close() }
}

// runtimeConfig sizes the game surface from the local terminal.
func runtimeConfig(cfg config.PortalConfig) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   cfg.TickRate,
		Seed:       flagSeed,
		Difficulty: cfg.Difficulty,
		ConfigDir:  cfg.GameConfigDir,
	}
}
