package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Open the portal straight on the specified game. Esc returns to the
catalog.

Controls:
  Arrows/WASD  - Move, steer, rotate
  Space        - Jump, flap, fire, spin, hard drop
  X            - Duck
  Enter        - Confirm
  P            - Pause
  R            - Restart (after game over)
  Ctrl+C       - Quit

Difficulty options (games with tuning files):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play flappy
  arcade play dino --difficulty easy
  arcade play tetris --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var openCmd = &cobra.Command{
	Use:   "open <route>",
	Short: "Open the portal on a route",
	Long: `Open the portal on a route. Known game ids open that game; anything
else lands on the catalog.

Examples:
  arcade open '#snake'
  arcade open 'https://arcade.example/#tetris'`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runPortal(args[0])
	},
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !catalog.Default().Has(gameID) && !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see the catalog)", gameID)
	}
	return runPortal("#" + gameID)
}
