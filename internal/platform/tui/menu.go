package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

// MenuItem is one mode in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // 0 when nothing is recorded
}

// menuChoice is how the menu was left.
type menuChoice int

const (
	menuOpen menuChoice = iota
	menuPlay
	menuScores
	menuQuit
)

// MenuModel picks a mode. It runs standalone through RunMenu or embedded in
// a SessionModel, which reads Result after every update.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	choice    menuChoice
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
}

// NewMenuModel lists every registered mode. store may be nil, in which case
// no best scores are shown.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems(store),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func menuItems(store *storage.Store) []MenuItem {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			item.Best, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
	}
	return items
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case MenuActionSelect:
		if n > 0 {
			return m.leave(menuPlay)
		}
	case MenuActionScoreboard:
		return m.leave(menuScores)
	case MenuActionQuit:
		return m.leave(menuQuit)
	}
	return m, nil
}

func (m MenuModel) leave(c menuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSubtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	menuItemStyle     = lipgloss.NewStyle()
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuControls lists the in-game keys shown under the mode list.
var menuControls = []string{
	"W/S thrust",
	"A/D turn",
	"Space beam",
	"E land",
	"P pause",
}

func (m MenuModel) View() string {
	if m.choice == menuQuit {
		return ""
	}

	lines := []string{
		"",
		m.centered("  S K Y C L A I M  ", menuTitleStyle),
		"",
		m.centered("Claim the sky, tile by tile", menuSubtitleStyle),
		"",
	}
	for i, item := range m.items {
		label, style := "  "+item.Title, menuItemStyle
		if i == m.cursor {
			label, style = "> "+item.Title, menuSelectedStyle
		}
		if item.Best > 0 {
			label += fmt.Sprintf("  (best %d)", item.Best)
		}
		lines = append(lines, m.centered(label, style))
	}
	lines = append(lines,
		"",
		m.centered("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", menuHelpStyle),
		m.centered("In game: "+strings.Join(menuControls, "  |  "), menuHelpStyle),
	)
	return strings.Join(lines, "\n") + "\n"
}

// centered styles text and indents it to the middle of the menu.
func (m MenuModel) centered(text string, style lipgloss.Style) string {
	indent := max(0, (m.width-lipgloss.Width(text))/2)
	return strings.Repeat(" ", indent) + style.Render(text)
}

// Selected is the picked mode, or nil while nothing was picked.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != menuPlay || len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

func (m MenuModel) IsQuitting() bool      { return m.choice == menuQuit }
func (m MenuModel) WantsScoreboard() bool { return m.choice == menuScores }

// centerText indents text to the middle of width columns.
func centerText(text string, width int) string {
	return strings.Repeat(" ", max(0, (width-lipgloss.Width(text))/2)) + text
}

// MenuResult is what the menu was left with. The config carries any resize
// seen while it was open.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) Result() MenuResult {
	res := MenuResult{Config: m.config}
	switch m.choice {
	case menuPlay:
		if sel := m.Selected(); sel != nil {
			res.GameID = sel.GameID
		}
	case menuScores:
		res.WantsScoreboard = true
	case menuQuit:
		res.Quit = true
	}
	return res
}

// RunMenu shows the menu as its own program. A program that ends without a
// choice, such as on a signal, counts as quit.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.choice == menuOpen {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
