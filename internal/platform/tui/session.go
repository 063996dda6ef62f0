package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

// sessionView is the screen a session currently shows.
type sessionView int

const (
	viewMenu sessionView = iota
	viewScoreboard
	viewGame
)

// SessionModel hosts a whole remote visit in one program: the menu, the
// scoreboard and any number of rounds.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	renderer *ScreenRenderer
	log      *log.Logger

	view       sessionView
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a session starting at the menu. r styles the
// session's output; nil uses the local terminal's renderer.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, r *lipgloss.Renderer) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		renderer: NewScreenRenderer(r),
		log:      log.New(io.Discard),
		menu:     NewMenuModel(store, cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// showMenu rebuilds the menu so best scores are current.
func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// The child models return tea.Quit when they finish because they also run
// as standalone programs. Inside a session their final state selects the
// next view and their command is dropped.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	res := m.menu.Result()
	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case res.WantsScoreboard:
		m.view = viewScoreboard
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()
	case res.GameID != "":
		return m.startRound(res.GameID, res.Config)
	}
	return m, cmd
}

func (m SessionModel) startRound(gameID string, cfg core.RuntimeConfig) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.log.Error("cannot create game", "game", gameID, "error", err)
		return m.showMenu()
	}

	cfg.Seed = time.Now().UnixNano()
	m.config = cfg
	m.log.Info("round started", "game", gameID, "seed", cfg.Seed)

	gm := NewGameModel(game, m.store, cfg)
	gm.renderer = m.renderer
	m.gameModel = &gm
	m.view = viewGame
	return m, gm.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.showMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	switch {
	case gm.BackToMenu():
		m.log.Info("round left", "game", gm.game.ID(), "score", gm.gameState.Score)
		return m.showMenu()
	case gm.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

// View renders the active view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewGame && m.gameModel != nil:
		return m.gameModel.View()
	case m.view == viewScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// GameModel is a round inside a session. Unlike Model, esc or b on a paused
// or finished round returns to the menu.
type GameModel struct {
	round
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a session round for game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	return GameModel{round: newRound(game, store, cfg)}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
		if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.backToMenu {
			return m, nil
		}
		m.step()
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// View implements tea.Model.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return m.view()
}

// IsQuitting reports whether the user asked to end the session.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user left the round for the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
