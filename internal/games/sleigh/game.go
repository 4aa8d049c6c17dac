// Package sleigh adapts the sleigh simulation to the arcade platform.
// Santa flies at a fixed column dropping gifts into chimneys while the
// naughty meter and the Krampus countdown decide when the threat arrives.
package sleigh

import (
	"github.com/vovakirdan/santa-arcade/internal/config"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/games/sleigh/sim"
	"github.com/vovakirdan/santa-arcade/internal/registry"
)

// Game implements registry.Game on top of sim.Machine.
type Game struct {
	machine *sim.Machine
	cfg     config.SleighConfig
	runtime core.RuntimeConfig

	store core.HighScoreStore
	onErr func(error)

	// pending collects cues between Steps, including the ones a Reset emits.
	pending []string
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a new sleigh game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sleigh"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sleigh Ride"
}

// SetHighScoreStore installs the best-score gateway used from the next Reset.
func (g *Game) SetHighScoreStore(store core.HighScoreStore, onErr func(error)) {
	g.store = store
	g.onErr = onErr
}

// Reset loads the configuration and builds a fresh machine on the title
// screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSleigh(configPath)
	if err != nil {
		cfg = config.DefaultSleighConfig()
	}
	if difficultyPreset != "" {
		config.ApplySleighPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.pending = g.pending[:0]
	opts := []sim.Option{
		sim.WithParams(ParamsFor(cfg)),
		sim.WithCueSink(sim.CueFunc(g.cue)),
	}
	if g.store != nil {
		opts = append(opts, sim.WithHighScoreStore(g.store), sim.WithPersistErrorHandler(g.onErr))
	}
	g.machine = sim.New(core.SeedFrom(runtime.Seed), opts...)
}

// ParamsFor turns a loaded configuration into simulation tunables.
func ParamsFor(cfg config.SleighConfig) sim.Params {
	dm := config.NewDifficultyManager(cfg.Difficulty)
	return sim.Params{
		StartHealth:           uint32(core.Clamp(cfg.Player.StartHealth, 1, sim.MaxHealthCap)),
		BaseScrollSpeed:       dm.Speed(cfg.World.BaseScrollSpeed, 0, 0),
		FirstKrampusCountdown: uint32(core.Max(dm.Countdown(cfg.Threat.FirstCountdown, 0, 0), 1)),
		Progression:           dm.IsEnabled(),
		TutorialFrames:        uint32(core.Max(cfg.Tutorial.Frames, 0)),
	}
}

func (g *Game) cue(c sim.Cue) {
	g.pending = append(g.pending, string(c))
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.machine.State()
	waiting := s.Mode == sim.ModeTitle || s.Mode == sim.ModeGameOver

	g.machine.Step(sim.Input{
		Up:      in.Has(core.ActionUp),
		Down:    in.Has(core.ActionDown),
		Drop:    in.Has(core.ActionDrop),
		Confirm: in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || (waiting && in.Has(core.ActionDrop)),
		Pause:   in.Has(core.ActionPause),
	})

	var events []string
	if len(g.pending) > 0 {
		events = append(events, g.pending...)
		g.pending = g.pending[:0]
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.machine.State()
	return core.GameState{
		Score:    int(s.Score),
		GameOver: s.Mode == sim.ModeGameOver,
		Paused:   s.Mode == sim.ModePaused,
	}
}

// Snapshot returns a deep copy of the simulation state.
func (g *Game) Snapshot() any {
	return g.machine.Snapshot()
}

// Machine exposes the underlying simulation.
func (g *Game) Machine() *sim.Machine {
	return g.machine
}

// Register the game with the registry
func init() {
	registry.Register("sleigh", func() registry.Game {
		return New()
	})
}
