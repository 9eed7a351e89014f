package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var flagCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog",
	Long: `Shows every game in the catalog, optionally filtered by category.
Games marked "soon" open a coming-soon page.

Examples:
  arcade list
  arcade list --category puzzle`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagCategory, "category", "c", catalog.All, "Category id to show")
}

func runList(_ *cobra.Command, _ []string) error {
	cat := catalog.Default()
	if flagCategory != catalog.All && cat.CategoryIndex(flagCategory) < 0 {
		ids := make([]string, 0, len(cat.Categories()))
		for _, c := range cat.Categories() {
			ids = append(ids, c.ID)
		}
		return fmt.Errorf("unknown category %q (one of %v)", flagCategory, ids)
	}

	games := cat.Filter(flagCategory)
	if len(games) == 0 {
		fmt.Println("No games in this category.")
		return nil
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Category", "")
	fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------", "")
	for _, g := range games {
		status := ""
		if !registry.Exists(g.ID) {
			status = "soon"
		}
		fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Category, status)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}
