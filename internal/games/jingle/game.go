// Package jingle implements Jingle Dash, the round-based trap game.
// Each round the player collects gifts during the Jingle phase; missing
// any of them starts a Hurry phase over now-visible traps, and stepping on
// a trap lets Krampus loose until the round timer runs out.
package jingle

import (
	"math"

	"github.com/vovakirdan/santa-arcade/internal/config"
	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/registry"
)

// Cue names emitted in StepResult.Events.
const (
	CueStart        = "start"
	CuePickup       = "pickup"
	CueBonus        = "bonus"
	CueHurry        = "hurry"
	CueTrap         = "trap"
	CueSurvive      = "survive"
	CueGameOver     = "game-over"
	CueMusicTitle   = "music:title"
	CueMusicJingle  = "music:jingle"
	CueMusicHurry   = "music:hurry"
	CueMusicKrampus = "music:krampus"
	CueMusicOver    = "music:game-over"
)

// Game implements the Jingle Dash logic.
type Game struct {
	s          State
	runtime    core.RuntimeConfig
	cfg        config.JingleConfig
	difficulty *config.DifficultyManager
	fps        uint32

	store core.HighScoreStore
	onErr func(error)

	events []string
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

// New creates a new Jingle Dash instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "jingle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Jingle Dash"
}

// SetHighScoreStore installs the best-score gateway used from the next Reset.
func (g *Game) SetHighScoreStore(store core.HighScoreStore, onErr func(error)) {
	g.store = store
	g.onErr = onErr
}

// Reset loads configuration and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.fps = uint32(runtime.TickRate)
	if g.fps == 0 {
		g.fps = 60
	}

	cfg, err := config.LoadJingle(configPath)
	if err != nil {
		cfg = config.DefaultJingleConfig()
	}
	if difficultyPreset != "" {
		config.ApplyJinglePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.s = State{
		Mode:        ModeTitle,
		RNG:         core.NewLCG(core.SeedFrom(runtime.Seed)),
		Round:       1,
		Player:      Point{X: CenterX, Y: CenterY},
		PlayerSpeed: cfg.Player.Speed,
		Krampus:     Point{X: 10, Y: 10},
	}
	g.s.HighScore = g.loadHighScore()
	g.initSnow()
	g.spawnRoundElements()
	g.events = append(g.events[:0], CueMusicTitle)
}

func (g *Game) loadHighScore() uint32 {
	if g.store == nil {
		return 0
	}
	v, err := g.store.LoadHighScore()
	if err != nil {
		g.report(err)
		return 0
	}
	return v
}

func (g *Game) report(err error) {
	if g.onErr != nil {
		g.onErr(err)
	}
}

func (g *Game) emit(cue string) {
	g.events = append(g.events, cue)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := &g.s

	if s.Mode == ModePaused {
		if in.Has(core.ActionPause) {
			s.Mode = s.PrevMode
		}
		return g.result()
	}
	if in.Has(core.ActionPause) && g.live() {
		s.PrevMode = s.Mode
		s.Mode = ModePaused
		return g.result()
	}

	s.Frame++
	dec(&s.Flash)
	dec(&s.Shake)
	g.updateSnow()
	g.updatePopups()
	g.tickTimer()

	confirm := in.Has(core.ActionConfirm) || in.Has(core.ActionDrop) || in.Has(core.ActionRestart)

	switch s.Mode {
	case ModeTitle:
		if confirm {
			g.emit(CueStart)
			g.startRound()
		}
	case ModeJingle:
		g.movePlayer(in)
		g.collectGifts()
		if s.JingleTimer <= 0 {
			if s.GiftsLeft() == 0 {
				g.award(PerfectBonus(s.Round))
				s.Flash, s.FlashColor, s.Shake = 12, core.ColorGold, 8
				g.emit(CueBonus)
				s.Round++
				g.startRound()
			} else {
				s.Mode = ModeHurry
				s.HurryTimer = HurrySeconds(g.baseSeconds(g.cfg.Timers.Hurry), s.Round)
				s.Flash, s.FlashColor, s.Shake = 10, core.ColorOrange, 6
				g.emit(CueHurry)
				g.emit(CueMusicHurry)
			}
		}
	case ModeHurry:
		g.movePlayer(in)
		g.collectGifts()
		if g.steppedOnTrap() {
			g.releaseKrampus()
		} else if s.HurryTimer <= 0 {
			g.award(HurryBonus(s.Round))
			g.emit(CueBonus)
			s.Round++
			g.startRound()
		}
	case ModeKrampus:
		g.movePlayer(in)
		if g.chase() {
			g.gameOver()
		} else if s.KrampusTimer <= 0 {
			g.award(SurviveBonus(s.Round))
			s.Flash, s.FlashColor, s.Shake = 15, core.ColorBrightGreen, 10
			g.emit(CueSurvive)
			s.Round++
			g.startRound()
		}
	case ModeGameOver:
		if confirm {
			g.emit(CueStart)
			g.resetGame()
		}
	}

	return g.result()
}

func (g *Game) live() bool {
	m := g.s.Mode
	return m == ModeJingle || m == ModeHurry || m == ModeKrampus
}

func (g *Game) result() core.StepResult {
	var events []string
	if len(g.events) > 0 {
		events = append(events, g.events...)
		g.events = g.events[:0]
	}
	return core.StepResult{State: g.State(), Events: events}
}

// tickTimer decrements the active phase timer once per second.
func (g *Game) tickTimer() {
	s := &g.s
	if s.Frame%g.fps != 0 {
		return
	}
	switch s.Mode {
	case ModeJingle:
		s.JingleTimer--
	case ModeHurry:
		s.HurryTimer--
	case ModeKrampus:
		s.KrampusTimer--
	}
}

// baseSeconds applies the difficulty manager to a configured phase length.
func (g *Game) baseSeconds(base int) int {
	return g.difficulty.Countdown(base, int(g.s.Score), 0)
}

func (g *Game) startRound() {
	s := &g.s
	s.Mode = ModeJingle
	s.JingleTimer = JingleSeconds(g.baseSeconds(g.cfg.Timers.Jingle), s.Round)
	s.HurryTimer = HurrySeconds(g.baseSeconds(g.cfg.Timers.Hurry), s.Round)
	s.KrampusTimer = KrampusSeconds(g.baseSeconds(g.cfg.Timers.Krampus), s.Round)
	s.KrampusSpeed = g.difficulty.Speed(g.cfg.Krampus.BaseSpeed, int(s.Score), 0) +
		float64(s.Round-1)*g.cfg.Krampus.SpeedPerRound

	s.Player = Point{X: CenterX, Y: CenterY}
	s.GiftsThisRound = 0
	g.spawnRoundElements()

	s.Flash, s.FlashColor, s.Shake = 8, core.ColorBrightWhite, 6
	g.emit(CueMusicJingle)
}

func (g *Game) resetGame() {
	s := &g.s
	s.Score = 0
	s.Round = 1
	s.Popups = s.Popups[:0]
	g.startRound()
}

// spawnRoundElements places traps away from the start clearing and gifts
// away from the traps. Placement is rejection sampling with a fixed
// attempt cap, so it always terminates and stays deterministic.
func (g *Game) spawnRoundElements() {
	s := &g.s
	s.Traps = s.Traps[:0]
	for i := 0; i < TrapCount(s.Round); i++ {
		var p Point
		for try := 0; try < placeAttempts; try++ {
			p = Point{X: s.RNG.Range(20, 236), Y: s.RNG.Range(20, 124)}
			if math.Hypot(p.X-CenterX, p.Y-CenterY) > spawnClearing {
				break
			}
		}
		s.Traps = append(s.Traps, p)
	}

	s.Gifts = s.Gifts[:0]
	for i := 0; i < GiftCount(s.Round); i++ {
		var p Point
		for try := 0; try < placeAttempts; try++ {
			p = Point{X: s.RNG.Range(24, 232), Y: s.RNG.Range(24, 120)}
			if !nearAny(p, s.Traps, trapClearance) {
				break
			}
		}
		s.Gifts = append(s.Gifts, Gift{Point: p})
	}
}

func nearAny(p Point, pts []Point, r float64) bool {
	for _, q := range pts {
		if math.Hypot(p.X-q.X, p.Y-q.Y) < r {
			return true
		}
	}
	return false
}

func (g *Game) movePlayer(in core.InputFrame) {
	s := &g.s
	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx -= s.PlayerSpeed
	}
	if in.Has(core.ActionRight) {
		dx += s.PlayerSpeed
	}
	if in.Has(core.ActionUp) {
		dy -= s.PlayerSpeed
	}
	if in.Has(core.ActionDown) {
		dy += s.PlayerSpeed
	}
	if dx != 0 && dy != 0 {
		dx *= diagonal
		dy *= diagonal
	}
	s.Player.X = core.ClampF(s.Player.X+dx, minX, maxX)
	s.Player.Y = core.ClampF(s.Player.Y+dy, minY, maxY)
}

func (g *Game) collectGifts() {
	s := &g.s
	for i := range s.Gifts {
		gift := &s.Gifts[i]
		if gift.Collected || core.Dist(s.Player.X, s.Player.Y, gift.X, gift.Y) >= giftRadius {
			continue
		}
		gift.Collected = true
		points := GiftPoints(s.Round)
		s.Score += points
		s.GiftsThisRound++
		s.Popups = append(s.Popups, Popup{Point: Point{X: gift.X, Y: gift.Y - 10}, Value: points, Life: popupLife})
		s.Flash, s.FlashColor = 4, core.ColorBrightGreen
		g.emit(CuePickup)
	}
}

func (g *Game) steppedOnTrap() bool {
	return nearAny(g.s.Player, g.s.Traps, trapRadius)
}

// releaseKrampus spawns the chaser in the corner opposite the player.
func (g *Game) releaseKrampus() {
	s := &g.s
	s.Mode = ModeKrampus
	s.KrampusTimer = KrampusSeconds(g.baseSeconds(g.cfg.Timers.Krampus), s.Round)
	s.Krampus = Point{X: 236, Y: 124}
	if s.Player.X > CenterX {
		s.Krampus.X = 20
	}
	if s.Player.Y > CenterY {
		s.Krampus.Y = 20
	}
	s.Flash, s.FlashColor, s.Shake = 15, core.ColorBrightRed, 12
	g.emit(CueTrap)
	g.emit(CueMusicKrampus)
}

// chase moves Krampus toward the player and reports a catch. The distance
// is measured before the move.
func (g *Game) chase() bool {
	s := &g.s
	dx := s.Player.X - s.Krampus.X
	dy := s.Player.Y - s.Krampus.Y
	dist := math.Max(math.Hypot(dx, dy), 0.01)
	s.Krampus.X += dx / dist * s.KrampusSpeed
	s.Krampus.Y += dy / dist * s.KrampusSpeed
	return dist < catchRadius
}

func (g *Game) gameOver() {
	s := &g.s
	s.Mode = ModeGameOver
	s.Flash, s.FlashColor, s.Shake = 20, core.ColorBrightRed, 15
	g.emit(CueGameOver)
	g.emit(CueMusicOver)
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if g.store != nil {
			if err := g.store.SaveHighScore(s.HighScore); err != nil {
				g.report(err)
			}
		}
	}
}

func (g *Game) award(points uint32) {
	g.s.Score += points
	g.s.Popups = append(g.s.Popups, Popup{Point: Point{X: CenterX, Y: 60}, Value: points, Life: popupLife})
}

func (g *Game) initSnow() {
	s := &g.s
	s.Snow = s.Snow[:0]
	for i := 0; i < snowflakes; i++ {
		s.Snow = append(s.Snow, Snowflake{
			Point: Point{X: s.RNG.Range(0, ArenaW), Y: s.RNG.Range(0, ArenaH)},
			Speed: s.RNG.Range(0.3, 1.2),
			Size:  uint8(s.RNG.Draw()%3 + 1),
			Drift: s.RNG.Range(-0.3, 0.3),
		})
	}
}

func (g *Game) updateSnow() {
	s := &g.s
	sway := math.Sin(float64(s.Frame)/20) * 0.2
	for i := range s.Snow {
		f := &s.Snow[i]
		f.Y += f.Speed
		f.X += f.Drift + sway
		if f.Y > ArenaH+6 {
			f.Y = -5
			f.X = float64((s.RNG.Seed + s.Frame + uint32(i)*7919) % uint32(ArenaW))
		}
		if f.X < -5 {
			f.X = ArenaW + 4
		} else if f.X > ArenaW+4 {
			f.X = -5
		}
	}
}

func (g *Game) updatePopups() {
	kept := g.s.Popups[:0]
	for _, p := range g.s.Popups {
		p.Y -= 0.8
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	g.s.Popups = kept
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.s.Score),
		GameOver: g.s.Mode == ModeGameOver,
		Paused:   g.s.Mode == ModePaused,
	}
}

// Snapshot returns a deep copy of the simulation state.
func (g *Game) Snapshot() any {
	return g.s.clone()
}

func dec(v *uint32) {
	if *v > 0 {
		*v--
	}
}

// Register the game with the registry
func init() {
	registry.Register("jingle", func() registry.Game {
		return New()
	})
}
