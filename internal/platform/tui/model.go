package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

// Model is the Bubble Tea model that drives one game mode locally.
type Model struct {
	round
	quitting bool
}

// NewModel creates a model for game. A zero seed in cfg is replaced by the
// current time.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{round: newRound(game, store, cfg)}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		m.step()
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if home, err := os.UserHomeDir(); err == nil {
			//nolint:errcheck // a failed screenshot never interrupts the round
			m.screenshot(filepath.Join(home, ".skyclaim", "screenshots"))
		}
		return m, nil
	case "esc":
		// A single-mode run has no menu to go back to.
		m.inputFrame.Set(core.ActionPause)
		return m, nil
	}

	if quit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.view()
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	return err
}
