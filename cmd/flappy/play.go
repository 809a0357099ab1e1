package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Space/W/Up   - Flap (move up in the maze)
  A/D/Left/Right - Move
  S/Down       - Move down
  F/Enter      - Fire
  X            - Dash
  E            - Special
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Leave the run
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot

Examples:
  flappy play classic
  flappy play time_attack --tier hard
  flappy play boss --seed 7
  flappy play classic --config ./tuning.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning file on change (applies from the next run)")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available modes.")
		os.Exit(1)
	}

	mode, err := registry.Create(modeID)
	if err != nil {
		fail("creating mode: %v", err)
	}

	a, err := openApp(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	opts := a.options()
	a.logger.Info("playing", "mode", modeID, "tier", a.tier, "seed", flagSeed)

	var runErr error
	path := config.ResolvePath(flagConfig)
	switch {
	case flagWatch && path == "":
		a.logger.Warn("nothing to watch: no tuning file on disk")
		runErr = tui.Run(mode, a.profile, opts)
	case flagWatch:
		watcher, werr := config.NewWatcher(path)
		if werr != nil {
			a.Close()
			fail("%v", werr)
		}
		defer watcher.Close()
		a.logger.Info("watching tuning file", "path", path)
		runErr = tui.RunWatching(mode, a.profile, opts, watcher, path)
	default:
		runErr = tui.Run(mode, a.profile, opts)
	}

	if runErr != nil {
		a.Close()
		fail("running mode: %v", runErr)
	}
}
