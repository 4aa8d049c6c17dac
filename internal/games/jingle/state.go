package jingle

import (
	"math"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

// Arena geometry, in world units.
const (
	ArenaW  = 256.0
	ArenaH  = 144.0
	CenterX = ArenaW / 2
	CenterY = ArenaH / 2

	minX, maxX = 12.0, 244.0
	minY, maxY = 16.0, 132.0

	giftRadius    = 14.0
	trapRadius    = 10.0
	catchRadius   = 14.0
	spawnClearing = 40.0
	trapClearance = 24.0
	maxTraps      = 5
	maxGifts      = 6
	placeAttempts = 200
	diagonal      = 0.707
	popupLife     = 45
	snowflakes    = 30
)

// Mode is the phase of a round.
type Mode uint8

const (
	ModeTitle Mode = iota
	ModeJingle
	ModeHurry
	ModeKrampus
	ModeGameOver
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeJingle:
		return "jingle"
	case ModeHurry:
		return "hurry"
	case ModeKrampus:
		return "krampus"
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

// Point is a position in the arena.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gift is a collectible present.
type Gift struct {
	Point
	Collected bool `json:"collected"`
}

// Popup is a floating "+N" label.
type Popup struct {
	Point
	Value uint32 `json:"value"`
	Life  uint32 `json:"life"`
}

// Snowflake is background atmosphere.
type Snowflake struct {
	Point
	Speed float64 `json:"speed"`
	Size  uint8   `json:"size"`
	Drift float64 `json:"drift"`
}

// State is the whole jingle simulation.
type State struct {
	Frame    uint32   `json:"frame"`
	Mode     Mode     `json:"mode"`
	PrevMode Mode     `json:"prev_mode"`
	RNG      core.LCG `json:"rng"`

	Round     uint32 `json:"round"`
	Score     uint32 `json:"score"`
	HighScore uint32 `json:"high_score"`

	Player      Point   `json:"player"`
	PlayerSpeed float64 `json:"player_speed"`

	Krampus      Point   `json:"krampus"`
	KrampusSpeed float64 `json:"krampus_speed"`

	// Phase timers in seconds.
	JingleTimer  int `json:"jingle_timer"`
	HurryTimer   int `json:"hurry_timer"`
	KrampusTimer int `json:"krampus_timer"`

	Traps          []Point `json:"traps"`
	Gifts          []Gift  `json:"gifts"`
	GiftsThisRound uint32  `json:"gifts_this_round"`

	Flash      uint32     `json:"flash"`
	FlashColor core.Color `json:"flash_color"`
	Shake      uint32     `json:"shake"`
	Popups     []Popup    `json:"popups"`
	Snow       []Snowflake `json:"snow"`
}

func (s *State) clone() State {
	c := *s
	c.Traps = append([]Point(nil), s.Traps...)
	c.Gifts = append([]Gift(nil), s.Gifts...)
	c.Popups = append([]Popup(nil), s.Popups...)
	c.Snow = append([]Snowflake(nil), s.Snow...)
	return c
}

// GiftsLeft counts uncollected gifts.
func (s *State) GiftsLeft() int {
	n := 0
	for _, g := range s.Gifts {
		if !g.Collected {
			n++
		}
	}
	return n
}

// ShakeOffset returns the render offset for the current shake timer.
func (s *State) ShakeOffset() (dx, dy float64) {
	if s.Shake == 0 {
		return 0, 0
	}
	intensity := math.Min(float64(s.Shake)/2, 4)
	fr := float64(s.Frame)
	return math.Sin(fr*1.7) * intensity, math.Cos(fr*2.3) * intensity
}

// Round formulas. base is the round-1 length from the configuration.

// TrapCount is min(2+round, 5).
func TrapCount(round uint32) int {
	return min(2+int(round), maxTraps)
}

// GiftCount is min(3+round/2, 6).
func GiftCount(round uint32) int {
	return min(3+int(round/2), maxGifts)
}

// JingleSeconds shortens by one second per round for five rounds.
func JingleSeconds(base int, round uint32) int {
	return max(base-min(int(round)-1, 5), base-7)
}

// HurrySeconds shortens every third round down to half the base.
func HurrySeconds(base int, round uint32) int {
	return max(base-int(round)/3, base/2)
}

// KrampusSeconds shortens every second round down to half the base.
func KrampusSeconds(base int, round uint32) int {
	return max(base-int(round)/2, base/2)
}

// GiftPoints is the reward for one collected gift.
func GiftPoints(round uint32) uint32 { return 25 + round*5 }

// PerfectBonus is awarded when every gift is collected before the jingle
// timer runs out.
func PerfectBonus(round uint32) uint32 { return 100 + round*25 }

// HurryBonus is awarded for surviving the hurry phase without a trap.
func HurryBonus(round uint32) uint32 { return 50 + round*10 }

// SurviveBonus is awarded for outlasting Krampus.
func SurviveBonus(round uint32) uint32 { return 150 + round*50 }
