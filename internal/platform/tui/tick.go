// Package tui runs arcade games inside Bubble Tea, locally or over SSH.
// The simulation advances one fixed step per TickMsg.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the simulation rate, in steps per second, used when a
// config leaves it unset.
const DefaultTickRate = 60

// TickMsg advances the game by one step.
type TickMsg time.Time

// tickInterval is the wall-clock time between steps. Non-positive rates fall
// back to DefaultTickRate.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
