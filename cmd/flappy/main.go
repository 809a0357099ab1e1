// flappy is a Flappy Bird arcade for the terminal with a handful of
// mini-game modes, a skin shop and an SSH server for remote play.
//
// Usage:
//
//	flappy list              - List available modes
//	flappy play <mode>       - Play a mode
//	flappy menu              - Pick modes, skins and scores interactively
//	flappy shop              - Browse and buy skins
//	flappy scores [mode]     - Show best runs and stats
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/flappy.db)
//	--theme <name>      - UI theme: classic or tet
//	--tier <name>       - Difficulty tier: easy, medium or hard
//	--config <path>     - Tuning YAML file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/flappy-arcade/internal/games/battle"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/boss"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/classic"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/dodge"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/maze"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/memory"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagTheme    string
	flagTier     string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Arcade - Flappy Bird and friends in your terminal",
	Long: `Flappy Arcade is a terminal Flappy Bird with extra modes: time attack,
zen, a CPU battle, a boss fight, a hazard dodger, a memory game and a
treasure maze. Coins earned in any mode buy skins in the shop.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive menu with shop and scores
  shop     - Browse and buy skins
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  flappy list
  flappy play classic --tier hard
  flappy play dodge --seed 42
  flappy menu --theme tet
  flappy serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the profile database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "classic", "UI theme: classic, tet")
	rootCmd.PersistentFlags().StringVar(&flagTier, "tier", "medium", "Difficulty tier: easy, medium, hard")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.flappy/flappy.log for interactive commands)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
