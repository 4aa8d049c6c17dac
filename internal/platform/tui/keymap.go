package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

// DefaultHoldTicks is how long a movement key stays down after its last
// press or auto-repeat. Terminals never report key release, so held
// movement is emulated from the repeat stream.
const DefaultHoldTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions and keeps
// movement actions alive between key repeats.
type KeyMapper struct {
	holdTicks int
	held      map[core.Action]int
}

// NewKeyMapper creates a key mapper with the given hold window in ticks.
// A value below 1 uses DefaultHoldTicks.
func NewKeyMapper(holdTicks int) *KeyMapper {
	if holdTicks < 1 {
		holdTicks = DefaultHoldTicks
	}
	return &KeyMapper{
		holdTicks: holdTicks,
		held:      make(map[core.Action]int),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ":
		return core.ActionDrop, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Press records a key message. Edge actions go straight into frame; held
// actions start or refresh their hold window and cancel the opposite
// direction. Returns true if the key was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case action.IsHeld():
		km.held[action] = km.holdTicks
		delete(km.held, opposite[action])
		frame.Set(action)
	default:
		frame.Set(action)
	}
	return isQuit
}

// Tick adds the still-held actions to frame and ages the hold windows.
// Call once per simulation tick, before Step.
func (km *KeyMapper) Tick(frame *core.InputFrame) {
	for a, left := range km.held {
		frame.Set(a)
		if left <= 1 {
			delete(km.held, a)
		} else {
			km.held[a] = left - 1
		}
	}
}

// Release drops every held action, e.g. on pause or focus loss.
func (km *KeyMapper) Release() {
	clear(km.held)
}

// Held reports whether a movement action is currently held.
func (km *KeyMapper) Held(a core.Action) bool {
	return km.held[a] > 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
