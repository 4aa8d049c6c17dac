package sim

type eventKind uint8

const (
	eventDelivered eventKind = iota
	eventMissed
)

type ledgerEvent struct {
	kind   eventKind
	x, y   float64
	points uint32
}

// DeliveryPoints is the flat reward for one delivered gift.
func DeliveryPoints(level uint32) uint32 {
	return 100 + level*10
}

// ComboBonus returns the bonus awarded when the streak reaches count.
func ComboBonus(count uint32) uint32 {
	switch {
	case count >= 10:
		return 500
	case count >= 5:
		return 300
	case count == 4:
		return 200
	case count == 3:
		return 100
	case count == 2:
		return 50
	default:
		return 0
	}
}

// addCombo extends the streak and returns the bonus it earned.
func addCombo(s *State) uint32 {
	s.ComboCount = satAdd(s.ComboCount, 1)
	s.ComboTimer = comboWindow
	if s.ComboCount > s.MaxCombo {
		s.MaxCombo = s.ComboCount
	}
	return ComboBonus(s.ComboCount)
}

func breakCombo(s *State) {
	s.ComboCount = 0
	s.ComboTimer = 0
}

// decayCombo ends the streak on the frame its window closes.
func decayCombo(s *State) {
	if s.ComboTimer == 0 {
		return
	}
	s.ComboTimer--
	if s.ComboTimer == 0 && s.ComboCount > 0 {
		s.ComboCount = 0
	}
}

// applyLedger drains this frame's events in the order the collision pass
// produced them.
func applyLedger(s *State, p Params, sink CueSink) {
	decayCombo(s)
	for _, ev := range s.ledger {
		switch ev.kind {
		case eventDelivered:
			s.Score = satAdd(s.Score, ev.points)
			s.Deliveries = satAdd(s.Deliveries, 1)
			s.Naughty = satSub(s.Naughty, naughtyPerGift)
			bonus := addCombo(s)
			s.Score = satAdd(s.Score, bonus)
			addPopup(s, ev.x, ev.y-10, ev.points+bonus)
			spawnParticles(s, ev.x, ev.y, 12, 0)
			s.Feedback.Flash = 4
			s.Feedback.FlashKind = FlashGold
			sink.Cue(CueDelivery)
			if p.Progression && shouldLevelUp(s.Deliveries) {
				levelUp(s, sink)
			}
		case eventMissed:
			breakCombo(s)
		}
	}
	s.ledger = s.ledger[:0]
}

func levelUp(s *State, sink CueSink) {
	s.Level++
	applyDifficulty(s)
	s.Feedback.LevelBanner = 120
	spawnParticles(s, PlayerX, s.Player.Y, 20, 2)
	sink.Cue(CueLevelUp)
}

// finishRun records a new best score once the run is over.
func finishRun(s *State, store highScoreSaver) {
	if s.Score <= s.HighScore {
		return
	}
	s.HighScore = s.Score
	store.save(s.HighScore)
}
