// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// SleighConfig contains all configuration for the sleigh game.
type SleighConfig struct {
	Player     SleighPlayer     `yaml:"player"`
	World      SleighWorld      `yaml:"world"`
	Threat     SleighThreat     `yaml:"threat"`
	Tutorial   SleighTutorial   `yaml:"tutorial"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SleighPlayer defines the sleigh's starting resources.
type SleighPlayer struct {
	StartHealth int `yaml:"start_health"` // Starting health and health cap (1..5)
}

// SleighWorld defines world motion.
type SleighWorld struct {
	BaseScrollSpeed float64 `yaml:"base_scroll_speed"` // World units per frame at level 1
}

// SleighThreat defines the first Krampus countdown of a run.
type SleighThreat struct {
	FirstCountdown int `yaml:"first_countdown"` // Frames before the first warning
}

// SleighTutorial defines the first-run hint.
type SleighTutorial struct {
	Frames int `yaml:"frames"`
}

// JingleConfig contains all configuration for the jingle game.
type JingleConfig struct {
	Player     JinglePlayer     `yaml:"player"`
	Krampus    JingleKrampus    `yaml:"krampus"`
	Timers     JingleTimers     `yaml:"timers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// JinglePlayer defines player movement.
type JinglePlayer struct {
	Speed float64 `yaml:"speed"`
}

// JingleKrampus defines the chaser.
type JingleKrampus struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerRound float64 `yaml:"speed_per_round"`
}

// JingleTimers defines the phase lengths of round 1, in seconds.
type JingleTimers struct {
	Jingle  int `yaml:"jingle"`
	Hurry   int `yaml:"hurry"`
	Krampus int `yaml:"krampus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`    // Multiplier added to speed at max difficulty
	CountdownReduction int     `yaml:"countdown_reduction"` // Countdown shortening at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "" so
// the config file's own settings apply.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
