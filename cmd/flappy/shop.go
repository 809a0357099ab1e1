package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
)

var (
	flagBuy   string
	flagEquip string
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse, buy and equip skins",
	Long: `Open the skin shop. With --buy or --equip the action runs without
the interactive screen.

Seasonal skins are only on sale with --theme tet.

Examples:
  flappy shop
  flappy shop --buy red_angry
  flappy shop --equip default
  flappy shop --theme tet`,
	Run: runShop,
}

func init() {
	shopCmd.Flags().StringVar(&flagBuy, "buy", "", "Buy (and equip) the skin with this ID")
	shopCmd.Flags().StringVar(&flagEquip, "equip", "", "Equip an owned skin by ID")
}

func runShop(_ *cobra.Command, _ []string) {
	a, err := openApp(flagBuy == "" && flagEquip == "")
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if flagBuy == "" && flagEquip == "" {
		opts := a.options()
		p := tea.NewProgram(tui.NewShopModel(a.profile, opts.Runtime.ScreenW, opts.Runtime.ScreenH), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			a.Close()
			fail("%v", err)
		}
		return
	}

	if flagBuy != "" {
		if err := a.profile.Purchase(flagBuy); err != nil {
			a.Close()
			fail("cannot buy %q: %v", flagBuy, shopError(err))
		}
		flagEquip = flagBuy
		fmt.Printf("Bought %s.\n", a.profile.Catalog().Lookup(flagBuy).Name)
	}
	if err := a.profile.Equip(flagEquip); err != nil {
		a.Close()
		fail("cannot equip %q: %v", flagEquip, shopError(err))
	}

	w := a.profile.Wallet()
	fmt.Printf("Equipped %s. %s: %d\n", a.profile.Equipped().Name, a.theme.Labels().Coins, w.Coins)
}

func shopError(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInsufficientFunds):
		return "not enough coins"
	case errors.Is(err, scoring.ErrLocked):
		return "you don't own it yet"
	case errors.Is(err, scoring.ErrNotPurchasable):
		return "only on sale with --theme tet"
	case errors.Is(err, scoring.ErrUnknownCosmetic):
		return "no such skin"
	default:
		return err.Error()
	}
}
