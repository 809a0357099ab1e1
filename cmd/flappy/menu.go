package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with the interactive menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change the tier,
Enter to play. After a run, B returns to the menu.

Controls:
  Up/Down/j/k     - Pick mode
  Left/Right/h/l  - Change tier
  Enter/Space     - Play
  C               - Skin shop
  Tab             - Scores
  Q               - Quit

Examples:
  flappy menu
  flappy menu --theme tet
  flappy menu --fps 30 --db ./flappy.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := openApp(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := tui.RunSession(a.profile, a.runs(), a.options()); err != nil {
		a.Close()
		fail("%v", err)
	}
}
