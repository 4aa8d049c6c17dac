package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/santa-arcade/internal/registry"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

const (
	maxScores = 100 // rows loaded per game
	barWidth  = 12  // width of the "of best" column bar
)

var (
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boardSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	boardTabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Padding(0, 1)
	boardFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("34")).Padding(0, 1)
	boardEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Reload   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Reload, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("right", "l", "d", "tab"), key.WithHelp("→/tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("left", "h", "a", "shift+tab"), key.WithHelp("←", "prev game")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded runs per game with the stored best.
type ScoreboardModel struct {
	games  []registry.GameInfo
	cursor int
	store  *storage.Store

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	best   uint32

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered
// game. A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	dateWidth := min(max(m.width-4-6-10-barWidth-10, 12), 18)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Of best", Width: barWidth},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("124")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// gameID returns the selected game, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// reload reads runs, stats and the stored best for the selected game.
// Read failures show as an empty board.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.best = nil, nil, 0
	if id := m.gameID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
		if best, err := m.store.BestScore(id); err == nil {
			m.best = best
		}
	}
	m.fillRows()
}

// topScore is the larger of the stored best and the best recorded run.
func (m ScoreboardModel) topScore() uint32 {
	top := m.best
	if m.stats != nil {
		top = max(top, uint32(m.stats.HighScore))
	}
	return top
}

func (m *ScoreboardModel) fillRows() {
	top := m.topScore()
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			scoreBar(uint32(s.Score), top, barWidth),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// scoreBar draws score as a share of top, width cells wide.
func scoreBar(score, top uint32, width int) string {
	if top == 0 || width <= 0 {
		return ""
	}
	filled := int(uint64(min(score, top)) * uint64(width) / uint64(top))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// summary is the line under the title: runs, average and best.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		if m.best > 0 {
			return fmt.Sprintf("Best %d", m.best)
		}
		return ""
	}
	return fmt.Sprintf("%d runs  |  avg %.0f  |  best %d  |  last played %s",
		m.stats.GamesCount, m.stats.AvgScore, m.topScore(), m.stats.LastPlayed.Format("Jan 02 15:04"))
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
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
		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle, "*  NICE LIST  *", m.width))
	b.WriteString("\n")
	if line := m.summary(); line != "" {
		b.WriteString(centerStyled(boardSummaryStyle, line, m.width))
	}
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = boardActiveStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(tabs, " ")))
	b.WriteString("\n\n")

	content := m.table.View()
	if len(m.scores) == 0 {
		content = boardEmptyStyle.Render("No runs recorded yet.\nDeliver some gifts to make the list!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(content)))
	b.WriteString("\n\n")
	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
