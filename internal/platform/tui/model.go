package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/santa-arcade/internal/audio"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/platform/spectate"
	"github.com/vovakirdan/santa-arcade/internal/registry"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

// RunOptions wires the optional collaborators of a game session.
// Every field may be left nil.
type RunOptions struct {
	// Store records finished runs and, unless HighScores is set, keeps the
	// per-game best score.
	Store *storage.Store

	// HighScores overrides the best-score gateway, e.g. a 4-byte file.
	HighScores core.HighScoreStore

	// Audio receives every cue the game emits.
	Audio *audio.Player

	// Spectate receives a snapshot every SpectateEvery ticks, labelled
	// with Session so spectators can tell concurrent players apart.
	Spectate      *spectate.Hub
	SpectateEvery int
	Session       string

	// HoldTicks is the held-key emulation window.
	HoldTicks int

	Logger *log.Logger
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       RunOptions
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      *uint64
	quitting   bool
	back       bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SpectateEvery <= 0 {
		opts.SpectateEvery = 6
	}

	if aware, ok := game.(registry.HighScoreAware); ok {
		gw := opts.HighScores
		if gw == nil && opts.Store != nil {
			gw = opts.Store.HighScores(game.ID())
		}
		if gw != nil {
			logger := opts.Logger
			aware.SetHighScoreStore(gw, func(err error) {
				logger.Warn("high score persistence failed", "game", game.ID(), "error", err)
			})
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
		ticks:      new(uint64),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "m":
		if m.opts.Audio != nil {
			m.opts.Audio.SetMuted(!m.opts.Audio.Muted())
		}
		return m, nil
	}

	if m.keys.Press(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.back = true
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionPause) {
		m.keys.Release()
	}

	return m, nil
}

// handleResize processes window resize events. Games scale their world
// to the screen, so a resize never resets the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.keys.Tick(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	*m.ticks++

	if m.opts.Audio != nil {
		for _, cue := range result.Events {
			m.opts.Audio.Play(cue)
		}
	}

	if m.opts.Spectate != nil && *m.ticks%uint64(m.opts.SpectateEvery) == 0 {
		if snap, ok := m.game.(registry.Snapshotter); ok {
			if err := m.opts.Spectate.Publish(m.opts.Session, m.game.ID(), m.gameState.Score, snap.Snapshot()); err != nil {
				m.opts.Logger.Debug("spectator publish failed", "error", err)
			}
		}
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.opts.Store != nil && m.gameState.Score > 0 {
			if _, err := m.opts.Store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "error", err)
			}
		}
		m.scoreSaved = true
	} else if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// WantsMenu reports whether the player left with Back rather than Quit.
func (m Model) WantsMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program for one game. It returns true when
// the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.WantsMenu(), nil
	}
	return false, nil
}
