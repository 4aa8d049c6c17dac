package sim

import "math"

// Autopilot is a simple scripted player used by the headless runner and
// the tests. It reads the state, never mutates it, and keeps no history
// beyond the last drop frame, so its inputs are as deterministic as the
// simulation itself.
type Autopilot struct {
	// CruiseY is the height the sleigh returns to when nothing threatens it.
	CruiseY float64

	lastDrop uint32
}

// NewAutopilot returns an autopilot cruising at the start height.
func NewAutopilot() *Autopilot {
	return &Autopilot{CruiseY: PlayerStartY}
}

// Next decides the input for the coming frame.
func (a *Autopilot) Next(s *State) Input {
	var in Input
	switch s.Mode {
	case ModeTitle, ModeGameOver:
		in.Confirm = true
		return in
	case ModePaused:
		in.Pause = true
		return in
	}

	goal := a.CruiseY
	if y, ok := dodge(s); ok {
		goal = y
	}
	switch {
	case s.Player.Y < goal-4:
		in.Down = true
	case s.Player.Y > goal+4:
		in.Up = true
	}

	if s.Frame-a.lastDrop >= 10 && landsOnChimney(s) {
		in.Drop = true
		a.lastDrop = s.Frame
	}
	return in
}

// dodge returns a safer height when a projectile is closing in.
func dodge(s *State) (float64, bool) {
	for _, p := range s.Projectiles {
		if !p.Active || p.X < PlayerX-10 || p.X > PlayerX+80 {
			continue
		}
		if math.Abs(p.Y-s.Player.Y) > 30 {
			continue
		}
		if p.Y >= s.Player.Y {
			return math.Max(PlayerMinY, p.Y-50), true
		}
		return math.Min(PlayerMaxY, p.Y+50), true
	}
	return 0, false
}

// landsOnChimney predicts where a gift dropped now would meet each
// undelivered chimney's top.
func landsOnChimney(s *State) bool {
	for _, c := range s.Chimneys {
		if c.Delivered || c.X < PlayerX {
			continue
		}
		fall := c.Y - s.Player.Y
		if fall <= 0 {
			continue
		}
		// y(t) = v0*t + g/2*t^2
		a := giftGravity / 2
		t := (-giftStartVelY + math.Sqrt(giftStartVelY*giftStartVelY+4*a*fall)) / (2 * a)
		giftX := PlayerX - s.ScrollSpeed*giftDriftFactor*t
		chimneyX := c.X - s.ScrollSpeed*t
		if math.Abs(giftX-chimneyX) < deliverHalfW/2 {
			return true
		}
	}
	return false
}
