package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to mode actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// keyActions lists the actions each key raises. Up raises both Flap and Up
// so flight modes and the maze share one binding.
var keyActions = map[string][]core.Action{
	" ":           {core.ActionFlap},
	"w":           {core.ActionFlap, core.ActionUp},
	"up":          {core.ActionFlap, core.ActionUp},
	"s":           {core.ActionDown},
	"down":        {core.ActionDown},
	"a":           {core.ActionLeft},
	"left":        {core.ActionLeft},
	"d":           {core.ActionRight},
	"right":       {core.ActionRight},
	"shift+left":  {core.ActionLeft, core.ActionDash},
	"shift+right": {core.ActionRight, core.ActionDash},
	"x":           {core.ActionDash},
	"f":           {core.ActionFire},
	"enter":       {core.ActionFire, core.ActionConfirm},
	"e":           {core.ActionSpecial},
	"p":           {core.ActionPause},
	"r":           {core.ActionRestart},
	"b":           {core.ActionBack},
	"esc":         {core.ActionBack},
}

// MapKey translates a key message to actions.
// Returns the actions (possibly none) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}
	return keyActions[msg.String()], false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionShop
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "c", "$":
		return MenuActionShop
	}
	return MenuActionNone
}
