// Package tui runs skyclaim in a terminal: the Bubble Tea game loop, the
// menu and scoreboard, and the SSH server that hosts them per session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// TickMsg advances the simulation by one step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg. A non-positive rate uses the default.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
