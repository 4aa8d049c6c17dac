package tui

import (
	"errors"
	"maps"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/santa-arcade/internal/applog"
	"github.com/vovakirdan/santa-arcade/internal/audio"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/platform/spectate"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

// scriptedGame replays a fixed sequence of step results and records the
// inputs it was given.
type scriptedGame struct {
	steps  []core.StepResult
	inputs []core.InputFrame
	resets int

	store core.HighScoreStore
	onErr func(error)
}

func (g *scriptedGame) ID() string               { return "scripted" }
func (g *scriptedGame) Title() string            { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) Snapshot() any            { return map[string]int{"steps": len(g.inputs)} }
func (g *scriptedGame) SetHighScoreStore(s core.HighScoreStore, onErr func(error)) {
	g.store, g.onErr = s, onErr
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, core.InputFrame{Actions: maps.Clone(in.Actions)})
	i := len(g.inputs) - 1
	if i >= len(g.steps) {
		return g.steps[len(g.steps)-1]
	}
	return g.steps[i]
}

func (g *scriptedGame) State() core.GameState {
	if len(g.inputs) == 0 {
		return core.GameState{}
	}
	return g.steps[min(len(g.inputs), len(g.steps))-1].State
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelRoutesCuesToAudio(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{
		{Events: []string{"music:jingle", "pickup"}},
	}}
	player := audio.NewPlayer(applog.Discard())
	m := NewModel(game, testConfig(), RunOptions{Audio: player, Logger: applog.Discard()})

	tick(t, m)
	if got := player.Track(); got != "jingle" {
		t.Errorf("track = %q, want jingle", got)
	}
}

func TestModelPublishesSessionFrames(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{State: core.GameState{Score: 40}}}}
	hub := spectate.NewHub(applog.Discard())
	m := NewModel(game, testConfig(), RunOptions{
		Spectate:      hub,
		SpectateEvery: 2,
		Session:       "alice@10.0.0.5:40022",
		Logger:        applog.Discard(),
	})

	m = tick(t, m)
	if _, ok := hub.Latest(); ok {
		t.Fatal("published before the spectate interval")
	}
	tick(t, m)
	f, ok := hub.Latest()
	if !ok {
		t.Fatal("no frame published on the second tick")
	}
	if f.Session != "alice@10.0.0.5:40022" || f.Game != "scripted" || f.Score != 40 {
		t.Errorf("frame = %+v", f)
	}
}

func TestModelFeedsHeldKeys(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{}}}
	m := NewModel(game, testConfig(), RunOptions{HoldTicks: 2, Logger: applog.Discard()})

	m, _ = press(t, m, runeKey("w"))
	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}

	want := []bool{true, true, false}
	for i, in := range game.inputs {
		if got := in.Has(core.ActionUp); got != want[i] {
			t.Errorf("tick %d: Up = %v, want %v", i, got, want[i])
		}
	}
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	over := core.StepResult{State: core.GameState{Score: 120, GameOver: true}}
	game := &scriptedGame{steps: []core.StepResult{
		{State: core.GameState{Score: 50}},
		over, over, over,
		{State: core.GameState{Score: 0}},
		{State: core.GameState{Score: 80, GameOver: true}},
	}}
	m := NewModel(game, testConfig(), RunOptions{Store: store, Logger: applog.Discard()})
	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	scores, err := store.AllScores("scripted")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d runs, want 2: %+v", len(scores), scores)
	}
}

func TestModelWiresHighScoreGateway(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game := &scriptedGame{steps: []core.StepResult{{}}}
	NewModel(game, testConfig(), RunOptions{Store: store, Logger: applog.Discard()})
	if game.store == nil || game.onErr == nil {
		t.Fatal("gateway not installed")
	}
	if err := game.store.SaveHighScore(900); err != nil {
		t.Fatalf("SaveHighScore: %v", err)
	}
	if best, _ := store.BestScore("scripted"); best != 900 {
		t.Errorf("best = %d, want 900", best)
	}
	game.onErr(errors.New("disk full")) // must only log

	file, err := storage.NewFileHighScore(filepath.Join(t.TempDir(), "best.bin"))
	if err != nil {
		t.Fatalf("NewFileHighScore: %v", err)
	}
	other := &scriptedGame{steps: []core.StepResult{{}}}
	NewModel(other, testConfig(), RunOptions{Store: store, HighScores: file, Logger: applog.Discard()})
	if other.store != file {
		t.Error("HighScores should override the store gateway")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{}}}
	m := NewModel(game, testConfig(), RunOptions{Logger: applog.Discard()})

	back, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.WantsMenu() || cmd == nil {
		t.Error("Esc should leave for the menu")
	}

	quit, cmd := press(t, m, runeKey("q"))
	if quit.WantsMenu() || !quit.quitting || cmd == nil {
		t.Error("q should quit without the menu")
	}
}

func TestModelMuteToggle(t *testing.T) {
	player := audio.NewPlayer(applog.Discard())
	m := NewModel(&scriptedGame{steps: []core.StepResult{{}}}, testConfig(), RunOptions{Audio: player})

	m, _ = press(t, m, runeKey("m"))
	if !player.Muted() {
		t.Error("m should mute")
	}
	press(t, m, runeKey("m"))
	if player.Muted() {
		t.Error("second m should unmute")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &scriptedGame{steps: []core.StepResult{{}}}
	m := NewModel(game, testConfig(), RunOptions{Logger: applog.Discard()})
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}
	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should render the game")
	}
}
