package sim

import "math"

// spawnChimneys appends a chimney off the right edge when the field is empty
// or the rightmost chimney has scrolled past the current gap.
func spawnChimneys(s *State) {
	if n := len(s.Chimneys); n > 0 && s.Chimneys[n-1].X > chimneySpawnX-s.NextGap {
		return
	}
	y := s.RNG.Range(chimneyMinY, chimneyMaxY)
	style := uint8(s.RNG.Draw() % chimneyStyles)
	s.Chimneys = append(s.Chimneys, Chimney{X: chimneySpawnX, Y: y, Style: style})
	s.NextGap = s.RNG.Range(chimneyMinGap, chimneyMaxGap)
}

// pickTarget returns the index of the nearest undelivered chimney in the
// forward window, or NoTarget. Only strictly smaller distances replace the
// best, so the first chimney found at the minimum wins.
func pickTarget(chimneys []Chimney) int {
	best := NoTarget
	bestDist := math.MaxFloat64
	for i, c := range chimneys {
		if c.Delivered || c.X < PlayerX-targetBehind || c.X >= PlayerX+targetAhead {
			continue
		}
		if d := math.Abs(c.X - PlayerX); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// dropGift releases a gift at the sleigh.
func dropGift(s *State, sink CueSink) {
	s.Gifts = append(s.Gifts, Gift{
		X:      PlayerX,
		Y:      s.Player.Y,
		VelY:   giftStartVelY,
		Target: pickTarget(s.Chimneys),
		Active: true,
	})
	sink.Cue(CueDrop)
}

// spawnPowerUps counts down to the next power-up. The power-up appears on
// the step the countdown reaches zero, and the delay is re-rolled.
func spawnPowerUps(s *State) {
	if s.PowerUpTimer > 0 {
		s.PowerUpTimer--
		if s.PowerUpTimer > 0 {
			return
		}
	}
	y := s.RNG.Range(powerUpMinY, powerUpMaxY)
	kind := PowerUpHealth
	if s.RNG.Draw()%3 == 0 {
		kind = PowerUpInvincible
	}
	s.PowerUps = append(s.PowerUps, PowerUp{X: powerUpSpawnX, Y: y, Kind: kind, Active: true})
	s.PowerUpTimer = powerUpBaseDelay + s.RNG.Draw()%powerUpDelayRange
}

// Volley patterns, selected by (frame/60 + level) % 4.
const (
	PatternAimed = iota
	PatternSpread
	PatternWave
	PatternCross
)

// VolleyPattern returns the pattern a volley fired on this frame would use.
func VolleyPattern(frame, level uint32) int {
	return int((frame/60 + level) % 4)
}

// fireVolley spawns projectiles when Krampus is in position and the attack
// timer has run out.
func fireVolley(s *State) {
	k := &s.Krampus
	if !k.Active || k.X > krampusHoldX || k.AttackTimer > 0 {
		return
	}
	speed := projectileSpeed
	dx := PlayerX - k.X
	dy := s.Player.Y - k.Y
	dist := math.Max(math.Hypot(dx, dy), 0.01)
	ux, uy := dx/dist, dy/dist

	shoot := func(x, y, vx, vy float64) {
		s.Projectiles = append(s.Projectiles, Projectile{X: x, Y: y, VelX: vx, VelY: vy, Active: true})
	}

	switch VolleyPattern(s.Frame, s.Level) {
	case PatternAimed:
		shoot(k.X, k.Y, ux*speed, uy*speed)
	case PatternSpread:
		base := math.Atan2(uy, ux)
		for _, off := range [...]float64{-spreadAngle, 0, spreadAngle} {
			a := base + off
			shoot(k.X, k.Y, math.Cos(a)*speed, math.Sin(a)*speed)
		}
	case PatternWave:
		for _, f := range [...]float64{0.25, 0.5, 0.75} {
			shoot(k.X, ScreenH*f, -speed, 0)
		}
	case PatternCross:
		shoot(k.X, k.Y, -diagonal*speed, -diagonal*speed)
		shoot(k.X, k.Y, -diagonal*speed, diagonal*speed)
	}
	k.AttackTimer = FireRate(s.Level)
}

// spawnParticles emits a cosmetic burst. It draws from the RNG, so it is
// part of the deterministic trace even though nothing reads the particles.
func spawnParticles(s *State, x, y float64, count int, color uint8) {
	for i := 0; i < count; i++ {
		angle := s.RNG.Range(0, 2*math.Pi)
		speed := s.RNG.Range(1, 3)
		life := 20 + s.RNG.Draw()%20
		s.Particles = append(s.Particles, Particle{
			X:     x,
			Y:     y,
			VelX:  math.Cos(angle) * speed,
			VelY:  math.Sin(angle)*speed - 1,
			Life:  life,
			Color: color,
		})
	}
}

func spawnSnowflakes(s *State) {
	s.Snowflakes = s.Snowflakes[:0]
	for i := 0; i < snowflakeCount; i++ {
		s.Snowflakes = append(s.Snowflakes, Snowflake{
			X:     s.RNG.Range(0, ScreenW),
			Y:     s.RNG.Range(0, ScreenH),
			Speed: s.RNG.Range(0.3, 1.2),
			Size:  uint8(s.RNG.Draw()%3 + 1),
			Drift: s.RNG.Range(-0.3, 0.3),
		})
	}
}

func addPopup(s *State, x, y float64, value uint32) {
	s.Feedback.Popups = append(s.Feedback.Popups, Popup{X: x, Y: y, Value: value, Life: popupLife})
}
