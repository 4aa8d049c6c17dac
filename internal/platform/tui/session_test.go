package tui

import (
	"net"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-arcade/internal/applog"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/registry"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

func init() {
	registry.Register("scripted", func() registry.Game {
		return &scriptedGame{steps: []core.StepResult{{State: core.GameState{Score: 10}}}}
	})
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	if err := store.SetBestScore("scripted", 4321); err != nil {
		t.Fatalf("SetBestScore: %v", err)
	}

	m := NewMenuModel(store, testConfig())
	if !strings.Contains(m.View(), "best 4321") {
		t.Errorf("menu does not show the best score:\n%s", m.View())
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name  string
		key   tea.KeyMsg
		check func(MenuResult) bool
	}{
		{"select", tea.KeyMsg{Type: tea.KeyEnter}, func(r MenuResult) bool { return r.GameID == "scripted" }},
		{"scoreboard", tea.KeyMsg{Type: tea.KeyTab}, func(r MenuResult) bool { return r.WantsScoreboard }},
		{"quit", runeKey("q"), func(r MenuResult) bool { return r.Quit }},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, func(r MenuResult) bool { return r.Quit }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, testConfig())
			next, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Error("expected the menu to exit")
			}
			if r := next.(MenuModel).Result(); !tt.check(r) {
				t.Errorf("result = %+v", r)
			}
		})
	}
}

func TestScoreboardSummary(t *testing.T) {
	store := openStore(t)
	for _, s := range []int{100, 300} {
		if _, err := store.SaveScore("scripted", s); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	if err := store.SetBestScore("scripted", 500); err != nil {
		t.Fatalf("SetBestScore: %v", err)
	}

	sb := NewScoreboardModel(store, 120, 40)
	got := sb.summary()
	for _, want := range []string{"2 runs", "avg 200", "best 500"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}

	empty := NewScoreboardModel(nil, 120, 40)
	if s := empty.summary(); s != "" {
		t.Errorf("summary without a store = %q", s)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(testConfig(), RunOptions{Logger: applog.Discard()})

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewGame || s.game == nil {
		t.Fatalf("Enter should start a game, view = %v", s.view)
	}

	step(TickMsg{})
	if !strings.Contains(s.View(), "scripted") {
		t.Error("session should render the game")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu || s.game != nil {
		t.Fatalf("Esc should return to the menu, view = %v", s.view)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewScores {
		t.Fatalf("Tab should open the scoreboard, view = %v", s.view)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Fatalf("Esc should leave the scoreboard, view = %v", s.view)
	}

	if cmd := step(runeKey("q")); cmd == nil || !s.quitting {
		t.Error("q should end the session")
	}
	if s.View() != "" {
		t.Error("a finished session renders nothing")
	}
}

func TestSessionTracksResize(t *testing.T) {
	s := NewSessionModel(testConfig(), RunOptions{Logger: applog.Discard()})
	next, _ := s.Update(tea.WindowSizeMsg{Width: 90, Height: 33})
	s = next.(SessionModel)
	if s.config.ScreenW != 90 || s.config.ScreenH != 33 {
		t.Errorf("config = %+v", s.config)
	}
}

func TestRenderScreen(t *testing.T) {
	screen := core.NewScreen(6, 2)
	screen.DrawTextColored(0, 0, "ho", core.ColorRed)
	screen.DrawText(2, 0, "ho")
	screen.DrawTextColored(0, 1, "ho", core.ColorGold)

	out := RenderScreen(screen)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Count(out, "ho") != 3 {
		t.Errorf("text lost in %q", out)
	}
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score, top uint32
		want       string
	}{
		{0, 0, ""},
		{50, 100, "██░░"},
		{100, 100, "████"},
		{150, 100, "████"},
		{0, 100, "░░░░"},
	}
	for _, tt := range tests {
		if got := scoreBar(tt.score, tt.top, 4); got != tt.want {
			t.Errorf("scoreBar(%d, %d) = %q, want %q", tt.score, tt.top, got, tt.want)
		}
	}
}

func TestSessionID(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		remote net.Addr
		want   string
	}{
		{"user and address", "alice", &net.TCPAddr{IP: net.ParseIP("10.0.0.5"), Port: 40022}, "alice@10.0.0.5:40022"},
		{"same user elsewhere", "alice", &net.TCPAddr{IP: net.ParseIP("10.0.0.9"), Port: 51000}, "alice@10.0.0.9:51000"},
		{"no user", "", &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2222}, "anonymous@127.0.0.1:2222"},
		{"no address", "bob", nil, "bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionID(tt.user, tt.remote); got != tt.want {
				t.Errorf("sessionID = %q, want %q", got, tt.want)
			}
		})
	}
}
