package sim

import (
	"math"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

// Option configures a Machine.
type Option func(*Machine)

// WithCueSink routes audio cues to sink.
func WithCueSink(sink CueSink) Option {
	return func(m *Machine) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithHighScoreStore sets the persistence gateway for the best score.
func WithHighScoreStore(store core.HighScoreStore) Option {
	return func(m *Machine) { m.saver.store = store }
}

// WithPersistErrorHandler receives load and save failures. They never stop
// the game.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(m *Machine) { m.saver.onErr = fn }
}

// WithParams overrides the difficulty tunables.
func WithParams(p Params) Option {
	return func(m *Machine) { m.params = p.normalized() }
}

type highScoreSaver struct {
	store core.HighScoreStore
	onErr func(error)
}

func (h highScoreSaver) load() uint32 {
	if h.store == nil {
		return 0
	}
	v, err := h.store.LoadHighScore()
	if err != nil {
		h.report(err)
		return 0
	}
	return v
}

func (h highScoreSaver) save(v uint32) {
	if h.store == nil {
		return
	}
	if err := h.store.SaveHighScore(v); err != nil {
		h.report(err)
	}
}

func (h highScoreSaver) report(err error) {
	if h.onErr != nil {
		h.onErr(err)
	}
}

// Machine is the mode state machine. It owns the State and runs the
// components in a fixed order once per Step.
type Machine struct {
	s      State
	params Params
	sink   CueSink
	saver  highScoreSaver
}

// New creates a machine on the title screen. The best score is loaded once
// here; a failed load leaves it at zero.
func New(seed uint32, opts ...Option) *Machine {
	if seed == 0 {
		seed = core.DefaultSeed
	}
	m := &Machine{params: DefaultParams(), sink: nopSink{}}
	for _, opt := range opts {
		opt(m)
	}
	m.s.RNG = core.NewLCG(seed)
	m.s.HighScore = m.saver.load()
	m.s.FirstPlay = true
	m.ResetGame()
	return m
}

// State exposes the live state for read-only inspection. Callers outside
// the frame loop should prefer Snapshot.
func (m *Machine) State() *State { return &m.s }

// Snapshot returns a deep copy safe to hand to another goroutine.
func (m *Machine) Snapshot() State { return m.s.clone() }

// Params returns the active tunables.
func (m *Machine) Params() Params { return m.params }

// ResetGame re-initializes the run in place and returns to the title
// screen. HighScore, FirstPlay and the RNG position survive.
func (m *Machine) ResetGame() {
	m.resetRun()
	m.s.Mode = ModeTitle
	m.s.PrevMode = ModeTitle
	m.sink.Cue(CueMusicTitle)
}

// StartGame begins a fresh run.
func (m *Machine) StartGame() {
	m.resetRun()
	m.s.Mode = ModeDelivering
	m.s.PrevMode = ModeDelivering
	if m.s.FirstPlay {
		m.s.Feedback.Tutorial = m.params.TutorialFrames
		m.s.FirstPlay = false
	}
	m.s.Feedback.Fade = 30
	m.sink.Cue(CueStart)
	m.sink.Cue(CueMusicDelivering)
}

func (m *Machine) resetRun() {
	s := &m.s
	p := m.params

	s.Frame = 0
	s.Player = Player{Y: PlayerStartY}
	s.BaseScrollSpeed = p.BaseScrollSpeed
	s.Level = 1
	s.ScrollSpeed = ScrollSpeedFor(s.BaseScrollSpeed, s.Level)

	s.Chimneys = s.Chimneys[:0]
	s.Gifts = s.Gifts[:0]
	s.Projectiles = s.Projectiles[:0]
	s.PowerUps = s.PowerUps[:0]
	s.Particles = s.Particles[:0]
	s.ledger = s.ledger[:0]

	s.Health = p.StartHealth
	s.HealthCap = p.StartHealth
	s.Score = 0
	s.Deliveries = 0
	s.Naughty = 0
	s.ComboCount, s.ComboTimer, s.MaxCombo = 0, 0, 0

	s.Krampus = Krampus{}
	s.KrampusTimer = p.FirstKrampusCountdown
	s.PowerUpTimer = powerUpFirstDelay
	s.NextGap = 0

	s.InvincibleTimer = 0
	s.StarPowerTimer = 0

	popups := s.Feedback.Popups[:0]
	s.Feedback = Feedback{Popups: popups}

	spawnSnowflakes(s)
}

// Step advances the simulation by one frame.
func (m *Machine) Step(in InputSource) {
	s := &m.s

	if s.Mode == ModePaused {
		if in.PauseToggled() {
			s.Mode = s.PrevMode
		}
		return
	}
	if in.PauseToggled() && (s.Mode == ModeDelivering || s.Mode == ModeKrampusAttack) {
		s.PrevMode = s.Mode
		s.Mode = ModePaused
		return
	}

	s.Frame++
	decayEffects(s)

	switch s.Mode {
	case ModeTitle:
		if in.ConfirmPressed() {
			m.StartGame()
		}
	case ModeGameOver:
		if in.ConfirmPressed() {
			m.StartGame()
		}
	case ModeDelivering, ModeKrampusWarning, ModeKrampusAttack:
		m.play(in)
	}
}

// play is one frame of a live run.
func (m *Machine) play(in InputSource) {
	s := &m.s

	applyDifficulty(s)

	movePlayer(s, in)
	moveEntities(s)
	moveKrampus(s)

	spawnChimneys(s)
	if in.DropPressed() {
		dropGift(s, m.sink)
	}
	spawnPowerUps(s)
	if s.Mode == ModeKrampusAttack {
		fireVolley(s)
	}

	ended := resolveCollisions(s, m.sink)
	applyLedger(s, m.params, m.sink)
	if ended {
		finishRun(s, m.saver)
		return
	}
	updateThreat(s, m.sink)
}

func movePlayer(s *State, in InputSource) {
	target := 0.0
	switch {
	case in.MoveUp() && !in.MoveDown():
		target = -PlayerSpeed
	case in.MoveDown() && !in.MoveUp():
		target = PlayerSpeed
	}
	p := &s.Player
	p.VelY += (target - p.VelY) * playerEase
	p.Y += p.VelY
	if p.Y < PlayerMinY {
		p.Y, p.VelY = PlayerMinY, 0
	}
	if p.Y > PlayerMaxY {
		p.Y, p.VelY = PlayerMaxY, 0
	}
	p.Tilt = p.VelY * playerTiltMul
}

func moveEntities(s *State) {
	for i := range s.Chimneys {
		s.Chimneys[i].X -= s.ScrollSpeed
	}
	for i := range s.Gifts {
		g := &s.Gifts[i]
		if !g.Active {
			continue
		}
		g.X -= s.ScrollSpeed * giftDriftFactor
		g.VelY += giftGravity
		g.Y += g.VelY
	}
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if !p.Active {
			continue
		}
		p.X += p.VelX
		p.Y += p.VelY
		if p.X < -projectileMargin || p.X > ScreenW+projectileMargin ||
			p.Y < -projectileMargin || p.Y > ScreenH+projectileMargin {
			p.Active = false
		}
	}
	for i := range s.PowerUps {
		p := &s.PowerUps[i]
		if !p.Active {
			continue
		}
		p.X -= s.ScrollSpeed
		p.Phase += powerUpPhaseStep
		if p.X < powerUpRemoveX {
			p.Active = false
		}
	}
}

// decayEffects runs before any mode logic: feedback timers, grace windows
// and the cosmetic pools.
func decayEffects(s *State) {
	f := &s.Feedback
	dec(&f.Flash)
	dec(&f.Shake)
	dec(&f.Fade)
	dec(&f.Tutorial)
	dec(&f.LevelBanner)
	dec(&s.InvincibleTimer)
	dec(&s.StarPowerTimer)

	popups := f.Popups[:0]
	for _, p := range f.Popups {
		p.Y -= popupRise
		p.Life--
		if p.Life > 0 {
			popups = append(popups, p)
		}
	}
	f.Popups = popups

	parts := s.Particles[:0]
	for _, p := range s.Particles {
		p.X += p.VelX
		p.Y += p.VelY
		p.VelY += 0.05
		p.Life--
		if p.Life > 0 {
			parts = append(parts, p)
		}
	}
	s.Particles = parts

	sway := math.Sin(float64(s.Frame)/20) * 0.2
	for i := range s.Snowflakes {
		fl := &s.Snowflakes[i]
		fl.Y += fl.Speed
		fl.X += fl.Drift + sway
		if fl.Y > ScreenH+6 {
			fl.Y = -5
			fl.X = float64((s.RNG.Seed + s.Frame + uint32(i)*7919) % uint32(ScreenW))
		}
		if fl.X < -5 {
			fl.X = ScreenW + 4
		} else if fl.X > ScreenW+4 {
			fl.X = -5
		}
	}
}

// ShakeOffset returns the render offset for the current shake timer.
func ShakeOffset(s *State) (dx, dy float64) {
	if s.Feedback.Shake == 0 {
		return 0, 0
	}
	intensity := math.Min(float64(s.Feedback.Shake)/2, 4)
	fr := float64(s.Frame)
	return math.Sin(fr*1.7) * intensity, math.Cos(fr*2.3) * intensity
}
