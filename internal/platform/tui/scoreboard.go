package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

const (
	boardRows       = 100 // rows loaded per tab
	statsPanelWidth = 24
	wideBoardWidth  = 80 // below this the stats panel is hidden
)

// boardTab selects what the scoreboard table lists.
type boardTab int

const (
	tabScores boardTab = iota
	tabRuns
)

func (t boardTab) title() string {
	if t == tabRuns {
		return "RECENT RUNS"
	}
	return "HIGH SCORES"
}

var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	boardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardModeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
	boardActiveModeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
	boardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	boardEmptyStyle = boardDimStyle.
			Italic(true).
			Padding(1, 3)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Runs     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Runs, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.Runs},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Runs:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "scores/runs")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows high scores and recent runs per game mode.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store

	tab    boardTab
	scores []storage.ScoreEntry
	runs   []storage.Run
	stats  *storage.GameStats

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered mode. A nil
// store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= wideBoardWidth }

// columns sizes the table for the active tab. The date column takes what
// is left of the box after the fixed-width columns.
func (m ScoreboardModel) columns() []table.Column {
	avail := m.width - 8
	if m.wide() {
		avail -= statsPanelWidth + 4
	}

	if m.tab == tabRuns {
		return []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Score", Width: 7},
			{Title: "Tiles", Width: 6},
			{Title: "Time", Width: 6},
			{Title: "Result", Width: 10},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: min(20, max(13, avail-20))},
	}
}

func (m ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadScores fetches both tabs and the stats for gameID.
func (m *ScoreboardModel) loadScores(gameID string) {
	m.scores, m.runs, m.stats = nil, nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(gameID, boardRows); err == nil {
			m.scores = scores
		}
		if runs, err := m.store.RecentRuns(gameID, boardRows); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.refreshRows()
}

func (m *ScoreboardModel) refreshRows() {
	if m.tab == tabRuns {
		m.table.SetRows(runRows(m.runs))
	} else {
		m.table.SetRows(scoreRows(m.scores))
	}
	m.table.GotoTop()
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.ClaimedTiles),
			formatElapsed(r.Elapsed),
			r.Outcome,
		}
	}
	return rows
}

// formatElapsed renders seconds as m:ss.
func formatElapsed(secs float64) string {
	s := max(0, int(secs))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (m *ScoreboardModel) selectMode(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.loadScores(m.games[m.gameCursor].ID)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Runs):
			m.tab = 1 - m.tab
			m.table = m.newTable()
			m.refreshRows()
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.selectMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.selectMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := m.tab.title()
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeBar(), m.width))
	b.WriteString("\n\n")

	body := boardBoxStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.statsPanel())
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// modeBar lists the modes with the selected one highlighted.
func (m ScoreboardModel) modeBar() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			parts[i] = boardActiveModeStyle.Render(g.Title)
		} else {
			parts[i] = boardModeStyle.Render(g.Title)
		}
	}
	bar := strings.Join(parts, " ")
	if lipgloss.Width(bar) > m.width-4 && len(m.games) > 0 {
		return "< " + m.games[m.gameCursor].Title + " >"
	}
	return bar
}

func (m ScoreboardModel) tableView() string {
	if len(m.table.Rows()) == 0 {
		return boardEmptyStyle.Render("No rounds recorded yet.\nFly a round to set a high score!")
	}
	return m.table.View()
}

// statsPanel summarizes the selected mode.
func (m ScoreboardModel) statsPanel() string {
	lines := []string{boardTitleStyle.Render("Stats"), ""}
	if m.stats == nil || m.stats.GamesCount == 0 {
		lines = append(lines, boardDimStyle.Render("no data"))
	} else {
		st := m.stats
		lines = append(lines,
			fmt.Sprintf("Rounds     %d", st.GamesCount),
			fmt.Sprintf("Best       %d", st.HighScore),
			fmt.Sprintf("Average    %.0f", st.AvgScore),
			fmt.Sprintf("Completed  %d", st.Completed),
			fmt.Sprintf("Most tiles %d", st.BestTiles),
		)
		if !st.LastPlayed.IsZero() {
			lines = append(lines, "", boardDimStyle.Render("last "+st.LastPlayed.Format("Jan 02 15:04")))
		}
	}
	return boardBoxStyle.Width(statsPanelWidth).Render(strings.Join(lines, "\n"))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
