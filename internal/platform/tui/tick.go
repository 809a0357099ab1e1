// Package tui provides the Bubble Tea integration for the arcade: the
// terminal loop, input mapping, menus, the skin shop and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxStep caps the dt of a single tick so a stalled terminal cannot
// teleport the simulation.
const maxStep = 100 * time.Millisecond

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// frameDelta returns the elapsed time between two ticks, falling back to
// the nominal interval for the first tick and clamping stalls.
func frameDelta(last, now time.Time, tickRate int) time.Duration {
	if last.IsZero() {
		return tickInterval(tickRate)
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	return min(dt, maxStep)
}
