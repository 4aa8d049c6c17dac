package sim

import "math"

// resolveCollisions runs every gameplay contact check for one frame and
// then the retention filters. It reports whether the run ended this frame.
func resolveCollisions(s *State, sink CueSink) (gameOver bool) {
	resolveGifts(s)
	gameOver = resolveProjectiles(s, sink)
	if !gameOver {
		resolvePowerUps(s, sink)
	}
	sweep(s)
	return gameOver
}

// InDeliveryBox reports whether a gift at (gx, gy) lands in a chimney at
// (cx, cy). The box is deliberately taller below the chimney top than above.
func InDeliveryBox(gx, gy, cx, cy float64) bool {
	return math.Abs(gx-cx) < deliverHalfW && gy > cy-deliverAbove && gy < cy+deliverBelow
}

func resolveGifts(s *State) {
	for gi := range s.Gifts {
		g := &s.Gifts[gi]
		if !g.Active {
			continue
		}
		for ci := range s.Chimneys {
			c := &s.Chimneys[ci]
			if c.Delivered || !InDeliveryBox(g.X, g.Y, c.X, c.Y) {
				continue
			}
			c.Delivered = true
			g.Active = false
			s.ledger = append(s.ledger, ledgerEvent{
				kind:   eventDelivered,
				x:      c.X,
				y:      c.Y,
				points: DeliveryPoints(s.Level),
			})
			break
		}
		if g.Active && (g.Y > ScreenH+10 || g.X < -20) {
			g.Active = false
			s.ledger = append(s.ledger, ledgerEvent{kind: eventMissed, x: g.X, y: g.Y})
		}
	}
}

func resolveProjectiles(s *State, sink CueSink) bool {
	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		if !p.Active || s.Shielded() {
			continue
		}
		if math.Hypot(p.X-PlayerX, p.Y-s.Player.Y) >= hitRadius {
			continue
		}
		p.Active = false
		s.Health = satSub(s.Health, 1)
		s.InvincibleTimer = invincibleFrames
		s.Feedback.Shake = 10
		s.Feedback.Flash = 10
		s.Feedback.FlashKind = FlashRed
		sink.Cue(CueHit)
		if s.Health == 0 {
			endRun(s, sink)
			return true
		}
	}
	return false
}

// endRun is the only way into GameOver.
func endRun(s *State, sink CueSink) {
	s.Mode = ModeGameOver
	s.InvincibleTimer = 0
	s.StarPowerTimer = 0
	s.Krampus.Active = false
	s.Krampus.WarningTimer = 0
	s.Feedback.Flash = 20
	s.Feedback.FlashKind = FlashRed
	s.Feedback.Shake = 15
	sink.Cue(CueGameOver)
	sink.Cue(CueMusicGameOver)
}

// PowerUpBobY is the effective height of a power-up for pickup and drawing.
func PowerUpBobY(p PowerUp) float64 {
	return p.Y + math.Sin(p.Phase)*powerUpBob
}

func resolvePowerUps(s *State, sink CueSink) {
	for i := range s.PowerUps {
		p := &s.PowerUps[i]
		if !p.Active {
			continue
		}
		if math.Abs(PlayerX-p.X) >= pickupHalfW || math.Abs(s.Player.Y-PowerUpBobY(*p)) >= pickupHalfH {
			continue
		}
		p.Active = false
		switch p.Kind {
		case PowerUpHealth:
			if s.Health >= s.HealthCap && s.HealthCap < MaxHealthCap {
				s.HealthCap++
			}
			if s.Health < s.HealthCap {
				s.Health++
			}
			s.Feedback.FlashKind = FlashGreen
		case PowerUpInvincible:
			s.StarPowerTimer = starPowerFrames
			s.Feedback.FlashKind = FlashGold
		}
		s.Feedback.Flash = 6
		spawnParticles(s, p.X, p.Y, 8, uint8(p.Kind))
		sink.Cue(CuePowerUp)
	}
}

// sweep is the once-per-frame retention pass. Chimneys leave exactly once,
// when they pass the left threshold; an undelivered one raises the naughty
// meter.
func sweep(s *State) {
	kept := s.Chimneys[:0]
	for _, c := range s.Chimneys {
		if c.X < chimneyRemoveX {
			if !c.Delivered {
				s.Naughty = clampNaughty(s.Naughty + naughtyPerMiss)
			}
			continue
		}
		kept = append(kept, c)
	}
	s.Chimneys = kept

	gifts := s.Gifts[:0]
	for _, g := range s.Gifts {
		if g.Active {
			gifts = append(gifts, g)
		}
	}
	s.Gifts = gifts

	shots := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		if p.Active {
			shots = append(shots, p)
		}
	}
	s.Projectiles = shots

	ups := s.PowerUps[:0]
	for _, p := range s.PowerUps {
		if p.Active {
			ups = append(ups, p)
		}
	}
	s.PowerUps = ups
}

func clampNaughty(v uint32) uint32 {
	if v > MaxNaughty {
		return MaxNaughty
	}
	return v
}
