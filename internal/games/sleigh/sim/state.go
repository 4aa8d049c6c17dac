// Package sim is the frame-driven simulation core of the sleigh game.
//
// A Machine owns one State and advances it exactly once per Step. The
// components (spawner, collision resolver, ledger, difficulty and threat
// controllers) are plain functions over *State; none of them keeps a
// reference to another or to the State between frames. The package draws
// nothing and plays nothing: renderers read Snapshot, audio listens to cues.
package sim

import "github.com/vovakirdan/santa-arcade/internal/core"

// World geometry, in world units.
const (
	ScreenW = 384.0
	ScreenH = 216.0
	PlayerX = 60.0
)

// Mode is the top-level state of the machine.
type Mode uint8

const (
	ModeTitle Mode = iota
	ModeDelivering
	ModeKrampusWarning
	ModeKrampusAttack
	ModeGameOver
	ModePaused
)

// String returns the mode name used in logs and snapshots.
func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeDelivering:
		return "delivering"
	case ModeKrampusWarning:
		return "krampus-warning"
	case ModeKrampusAttack:
		return "krampus-attack"
	case ModeGameOver:
		return "game-over"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Playing reports whether the run is live (delivering or under threat).
func (m Mode) Playing() bool {
	return m == ModeDelivering || m == ModeKrampusWarning || m == ModeKrampusAttack
}

// PowerUpKind selects the effect of a pickup.
type PowerUpKind uint8

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpInvincible
)

// NoTarget marks a gift dropped with no chimney in the forward window.
const NoTarget = -1

// Player is the sleigh. Its x position is fixed at PlayerX.
type Player struct {
	Y    float64 `json:"y"`
	VelY float64 `json:"vel_y"`
	Tilt float64 `json:"tilt"`
}

// Chimney is a delivery target scrolling toward the player.
type Chimney struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Delivered bool    `json:"delivered"`
	Style     uint8   `json:"style"`
}

// Gift is a present falling from the sleigh.
// Target is the chimney index chosen at drop time. It is advisory only and
// goes stale as soon as chimneys are swept.
type Gift struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VelY   float64 `json:"vel_y"`
	Target int     `json:"target"`
	Active bool    `json:"active"`
}

// Projectile is one shot of a Krampus volley.
type Projectile struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Active bool    `json:"active"`
}

// PowerUp floats toward the player with a sinusoidal bob.
type PowerUp struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Kind   PowerUpKind `json:"kind"`
	Active bool        `json:"active"`
	Phase  float64     `json:"phase"`
}

// Particle is cosmetic confetti.
type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	Life  uint32  `json:"life"`
	Color uint8   `json:"color"`
}

// Snowflake is background atmosphere.
type Snowflake struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"speed"`
	Size  uint8   `json:"size"`
	Drift float64 `json:"drift"`
}

// Krampus is the threat. WarningTimer runs while the mode is
// ModeKrampusWarning; Active is only true in ModeKrampusAttack (or Paused
// out of it).
type Krampus struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Active       bool    `json:"active"`
	AttackTimer  uint32  `json:"attack_timer"`
	Duration     uint32  `json:"duration"`
	WarningTimer uint32  `json:"warning_timer"`
}

// FlashKind tints the screen flash.
type FlashKind uint8

const (
	FlashWhite FlashKind = iota
	FlashGold
	FlashRed
	FlashGreen
	FlashOrange
)

// Popup is a floating "+N" score label.
type Popup struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value uint32  `json:"value"`
	Life  uint32  `json:"life"`
}

// Feedback holds timers that only renderers read. Gameplay events set them;
// no rule may branch on them.
type Feedback struct {
	Flash       uint32    `json:"flash"`
	FlashKind   FlashKind `json:"flash_kind"`
	Shake       uint32    `json:"shake"`
	Fade        uint32    `json:"fade"`
	Tutorial    uint32    `json:"tutorial"`
	LevelBanner uint32    `json:"level_banner"`
	Popups      []Popup   `json:"popups"`
}

// State is the whole simulation. One caller mutates it per frame.
type State struct {
	Frame    uint32   `json:"frame"`
	Mode     Mode     `json:"mode"`
	PrevMode Mode     `json:"prev_mode"`
	RNG      core.LCG `json:"rng"`

	Player          Player  `json:"player"`
	ScrollSpeed     float64 `json:"scroll_speed"`
	BaseScrollSpeed float64 `json:"base_scroll_speed"`

	Chimneys    []Chimney    `json:"chimneys"`
	Gifts       []Gift       `json:"gifts"`
	Projectiles []Projectile `json:"projectiles"`
	PowerUps    []PowerUp    `json:"powerups"`
	Particles   []Particle   `json:"particles"`
	Snowflakes  []Snowflake  `json:"snowflakes"`

	Health     uint32 `json:"health"`
	HealthCap  uint32 `json:"health_cap"`
	Score      uint32 `json:"score"`
	HighScore  uint32 `json:"high_score"`
	Deliveries uint32 `json:"deliveries"`
	Naughty    uint32 `json:"naughty"`
	Level      uint32 `json:"level"`

	ComboCount uint32 `json:"combo_count"`
	ComboTimer uint32 `json:"combo_timer"`
	MaxCombo   uint32 `json:"max_combo"`

	Krampus      Krampus `json:"krampus"`
	KrampusTimer uint32  `json:"krampus_timer"`
	PowerUpTimer uint32  `json:"powerup_timer"`
	NextGap      float64 `json:"next_gap"`

	InvincibleTimer uint32 `json:"invincible_timer"`
	StarPowerTimer  uint32 `json:"star_power_timer"`

	FirstPlay bool     `json:"first_play"`
	Feedback  Feedback `json:"feedback"`

	// ledger holds this frame's delivery and miss events in the order the
	// collision pass produced them. Drained by the scoring phase.
	ledger []ledgerEvent
}

// Shielded reports whether either grace window currently blocks damage.
func (s *State) Shielded() bool {
	return s.InvincibleTimer > 0 || s.StarPowerTimer > 0
}

// clone returns a deep copy with no shared slices.
func (s *State) clone() State {
	c := *s
	c.Chimneys = append([]Chimney(nil), s.Chimneys...)
	c.Gifts = append([]Gift(nil), s.Gifts...)
	c.Projectiles = append([]Projectile(nil), s.Projectiles...)
	c.PowerUps = append([]PowerUp(nil), s.PowerUps...)
	c.Particles = append([]Particle(nil), s.Particles...)
	c.Snowflakes = append([]Snowflake(nil), s.Snowflakes...)
	c.Feedback.Popups = append([]Popup(nil), s.Feedback.Popups...)
	c.ledger = nil
	return c
}

func satAdd(a, b uint32) uint32 {
	if a > ^uint32(0)-b {
		return ^uint32(0)
	}
	return a + b
}

func satSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

func dec(v *uint32) {
	if *v > 0 {
		*v--
	}
}
