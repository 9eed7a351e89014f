package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for the specified game. Without a game,
or with --interactive, opens the scoreboard; Enter there starts the
highlighted game.

Examples:
  arcade scores flappy
  arcade scores
  arcade scores snake -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'arcade list' to see the catalog)", gameID)
		}
	}

	if gameID == "" || flagInteractive {
		return runScoreboard(gameID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	//nolint:errcheck // Read-only use
	defer store.Close()

	scores, err := store.TopScores(gameID, storage.MaxHighScores)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := gameID
	if e, ok := catalog.Default().Lookup(gameID); ok {
		title = e.Title
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}

// runScoreboard shows the interactive scoreboard and opens the game picked
// there, if any.
func runScoreboard(gameID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	play, err := tui.RunScoreboard(store, catalog.Default(), cfg.Dark, gameID, width, height)
	//nolint:errcheck // The portal reopens the database
	store.Close()
	if err != nil || play == "" {
		return err
	}
	return runPortal("#" + play)
}
