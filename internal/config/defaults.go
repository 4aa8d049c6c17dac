package config

import (
	_ "embed"
)

//go:embed defaults/sleigh.yaml
var defaultSleighYAML []byte

//go:embed defaults/jingle.yaml
var defaultJingleYAML []byte

// DefaultSleighConfig returns the default sleigh configuration.
func DefaultSleighConfig() SleighConfig {
	return SleighConfig{
		Player: SleighPlayer{
			StartHealth: 3,
		},
		World: SleighWorld{
			BaseScrollSpeed: 2.0,
		},
		Threat: SleighThreat{
			FirstCountdown: 600,
		},
		Tutorial: SleighTutorial{
			Frames: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    0.5,
				CountdownReduction: 240,
			},
		},
	}
}

// DefaultJingleConfig returns the default jingle configuration.
func DefaultJingleConfig() JingleConfig {
	return JingleConfig{
		Player: JinglePlayer{
			Speed: 2.0,
		},
		Krampus: JingleKrampus{
			BaseSpeed:     1.2,
			SpeedPerRound: 0.15,
		},
		Timers: JingleTimers{
			Jingle:  15,
			Hurry:   6,
			Krampus: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    0.5,
				CountdownReduction: 5,
			},
		},
	}
}
