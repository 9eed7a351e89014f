package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/controls"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the portal home view",
	Long: `Open the portal on the catalog.

Controls:
  Up/Down/j/k      - Move the highlight
  Left/Right/Tab   - Switch category
  Enter/Space      - Play
  T                - Toggle dark/light theme
  S                - Scoreboard
  :                - Go to a route, e.g. #snake
  Esc              - Back to the catalog from a game
  Ctrl+S           - Save a screenshot of the game
  Q/Ctrl+C         - Quit

Mouse clicks pick tabs and games. Narrow terminals show a control pad
under the game; tap or swipe on it.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	return runPortal("")
}

// runPortal opens the portal on the local terminal at route.
func runPortal(route string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog := fileLogger(cfg)
	defer closeLog()

	store := storage.OpenOrMemory(cfg.DBPath, logger)
	//nolint:errcheck // Best-effort close on exit
	defer store.Close()

	rc := runtimeConfig(cfg)
	return tui.Run(tui.Options{
		Store:        store,
		Catalog:      catalog.Default(),
		Config:       rc,
		CompactWidth: cfg.CompactWidth,
		Dark:         cfg.Dark,
		Env: controls.Env{
			Width:     rc.ScreenW,
			Height:    rc.ScreenH,
			Touch:     os.Getenv(tui.TouchEnv) == "1",
			UserAgent: os.Getenv("TERM_PROGRAM"),
		},
		Route:         route,
		ScreenshotDir: cfg.ScreenshotDir,
		Logger:        logger,
	})
}
