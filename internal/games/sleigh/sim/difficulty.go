package sim

import "math"

// applyDifficulty re-derives the scroll speed from the level.
func applyDifficulty(s *State) {
	s.ScrollSpeed = ScrollSpeedFor(s.BaseScrollSpeed, s.Level)
}

// ScrollSpeedFor is min(3.5, base + (level-1)*0.2).
func ScrollSpeedFor(base float64, level uint32) float64 {
	if level < 1 {
		level = 1
	}
	return math.Min(maxScrollSpeed, base+float64(level-1)*scrollPerLevel)
}

// FireRate is the number of frames between Krampus volleys at a level.
func FireRate(level uint32) uint32 {
	shorten := level * fireRateStep
	if shorten > maxFireShorten {
		shorten = maxFireShorten
	}
	r := uint32(baseFireRate) - shorten
	if r < minFireRate {
		r = minFireRate
	}
	return r
}

// NextKrampusCountdown is the dormant countdown armed after a survived
// attack.
func NextKrampusCountdown(level uint32) uint32 {
	shorten := level * krampusTimerStep
	if level > maxKrampusShorten/krampusTimerStep || shorten > maxKrampusShorten {
		shorten = maxKrampusShorten
	}
	t := uint32(baseKrampusTimer) - shorten
	if t < minKrampusTimer {
		t = minKrampusTimer
	}
	return t
}

// shouldLevelUp reports whether the delivery count just crossed a level
// boundary.
func shouldLevelUp(deliveries uint32) bool {
	return deliveries > 0 && deliveries%deliveriesPerLevel == 0
}
