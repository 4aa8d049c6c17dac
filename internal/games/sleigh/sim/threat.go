package sim

// updateThreat advances the Krampus controller:
// dormant (Delivering) -> warning -> attack -> dormant.
func updateThreat(s *State, sink CueSink) {
	switch s.Mode {
	case ModeDelivering:
		dec(&s.KrampusTimer)
		if s.KrampusTimer == 0 || s.Naughty >= NaughtyThreshold {
			s.Mode = ModeKrampusWarning
			s.Krampus = Krampus{WarningTimer: warningFrames}
			s.Feedback.Flash = 8
			s.Feedback.FlashKind = FlashOrange
			sink.Cue(CueWarning)
		}
	case ModeKrampusWarning:
		dec(&s.Krampus.WarningTimer)
		if s.Krampus.WarningTimer == 0 {
			s.Mode = ModeKrampusAttack
			s.Krampus = Krampus{
				X:           krampusEntryX,
				Y:           s.RNG.Range(krampusMinY, krampusMaxY),
				Active:      true,
				AttackTimer: FireRate(s.Level),
				Duration:    attackFrames,
			}
			s.Feedback.Shake = 8
			sink.Cue(CueMusicKrampus)
		}
	case ModeKrampusAttack:
		dec(&s.Krampus.AttackTimer)
		dec(&s.Krampus.Duration)
		if s.Krampus.Duration == 0 {
			survive(s, sink)
		}
	}
}

func survive(s *State, sink CueSink) {
	bonus := 200 + s.Level*50
	s.Score = satAdd(s.Score, bonus)
	s.Naughty = 0
	s.Krampus.Active = false
	s.Krampus.AttackTimer = 0
	for i := range s.Projectiles {
		s.Projectiles[i].Active = false
	}
	s.Mode = ModeDelivering
	s.KrampusTimer = NextKrampusCountdown(s.Level)
	addPopup(s, PlayerX, s.Player.Y-20, bonus)
	s.Feedback.Flash = 10
	s.Feedback.FlashKind = FlashGold
	sink.Cue(CueSurvive)
	sink.Cue(CueMusicDelivering)
}

// moveKrampus is a fast approach to the hold line, then proportional
// tracking of the sleigh. The visible bob is applied by renderers.
func moveKrampus(s *State) {
	k := &s.Krampus
	if !k.Active {
		return
	}
	if k.X > krampusHoldX {
		k.X -= krampusApproach
		if k.X < krampusHoldX {
			k.X = krampusHoldX
		}
		return
	}
	k.Y += (s.Player.Y - k.Y) * krampusTrack
}
