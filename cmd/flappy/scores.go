package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the top 10 runs for the specified mode, or a summary of
every mode and the per-tier high scores when no mode is given.

Examples:
  flappy scores
  flappy scores classic
  flappy scores boss`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening profile database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}
	printTopRuns(store, args[0])
}

func printTopRuns(store *storage.Store, modeID string) {
	mode, err := registry.Create(modeID)
	if err != nil {
		fail("creating mode: %v", err)
	}

	runs, err := store.TopRuns(modeID, 10)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Best Runs - %s\n", mode.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first score!\n", modeID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-3s  %s\n", "Rank", "Score", "Tier", "Coins", "Win", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-3s  %s\n", "----", "-----", "----", "-----", "---", "----")
	for i, r := range runs {
		win := ""
		if r.Victory {
			win = "*"
		}
		fmt.Printf("  %-4d  %-8d  %-6s  %-5d  %-3s  %s\n",
			i+1, r.Score, r.Tier, r.Coins, win, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.ModeStats(modeID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Average: %.1f  Coins earned: %d\n",
			stats.Runs, stats.Victories, stats.AvgScore, stats.TotalCoins)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllModeStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}

	if hs, err := store.LoadHighScores(); err == nil {
		fmt.Println("Classic high scores")
		for _, t := range config.Tiers() {
			fmt.Printf("  %-6s  %d\n", t, hs.Best(t))
		}
		fmt.Println()
	}

	if w, err := store.LoadWallet(); err == nil {
		fmt.Printf("Coins: %d  Games played: %d  Total score: %d\n", w.Coins, w.GamesPlayed, w.TotalScore)
		fmt.Println()
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-5s  %-5s  %-6s  %s\n", "Mode", "Runs", "Wins", "Best", "Last played")
	fmt.Printf("  %-12s  %-5s  %-5s  %-6s  %s\n", "----", "----", "----", "----", "-----------")
	for _, info := range registry.List() {
		s, ok := all[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-5d  %-5d  %-6d  %s\n",
			info.ID, s.Runs, s.Victories, s.HighScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
