package sim

import "strings"

// InputSource is what the machine asks about the player's controls.
// Movement is level-triggered; the rest are edges that fire for one frame.
type InputSource interface {
	MoveUp() bool
	MoveDown() bool
	DropPressed() bool
	ConfirmPressed() bool
	PauseToggled() bool
}

// Input is a plain InputSource value.
type Input struct {
	Up      bool
	Down    bool
	Drop    bool
	Confirm bool
	Pause   bool
}

func (i Input) MoveUp() bool         { return i.Up }
func (i Input) MoveDown() bool       { return i.Down }
func (i Input) DropPressed() bool    { return i.Drop }
func (i Input) ConfirmPressed() bool { return i.Confirm }
func (i Input) PauseToggled() bool   { return i.Pause }

// Cue is a named signal for the audio layer.
type Cue string

const (
	CueStart    Cue = "start"
	CueDrop     Cue = "drop"
	CueDelivery Cue = "delivery"
	CueHit      Cue = "hit"
	CuePowerUp  Cue = "powerup"
	CueLevelUp  Cue = "level-up"
	CueWarning  Cue = "warning"
	CueSurvive  Cue = "survive"
	CueGameOver Cue = "game-over"

	CueMusicTitle      Cue = "music:title"
	CueMusicDelivering Cue = "music:delivering"
	CueMusicKrampus    Cue = "music:krampus"
	CueMusicGameOver   Cue = "music:game-over"
)

// IsMusic reports whether the cue selects a background track.
func (c Cue) IsMusic() bool {
	return strings.HasPrefix(string(c), "music:")
}

// CueSink receives cues as they happen. It must not call back into the
// machine.
type CueSink interface {
	Cue(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

// Cue calls f(c).
func (f CueFunc) Cue(c Cue) { f(c) }

type nopSink struct{}

func (nopSink) Cue(Cue) {}
