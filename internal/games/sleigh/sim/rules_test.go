package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

func TestComboBonus(t *testing.T) {
	tests := []struct {
		count uint32
		want  uint32
	}{
		{0, 0},
		{1, 0},
		{2, 50},
		{3, 100},
		{4, 200},
		{5, 300},
		{9, 300},
		{10, 500},
		{42, 500},
	}
	for _, tt := range tests {
		if got := ComboBonus(tt.count); got != tt.want {
			t.Errorf("ComboBonus(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestFireRate(t *testing.T) {
	tests := []struct {
		level uint32
		want  uint32
	}{
		{1, 45},
		{2, 40},
		{5, 25},
		{6, 25},
		{100, 25},
	}
	for _, tt := range tests {
		if got := FireRate(tt.level); got != tt.want {
			t.Errorf("FireRate(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestNextKrampusCountdown(t *testing.T) {
	tests := []struct {
		level uint32
		want  uint32
	}{
		{1, 560},
		{5, 400},
		{10, 200},
		{11, 200},
		{1 << 30, 200},
	}
	for _, tt := range tests {
		if got := NextKrampusCountdown(tt.level); got != tt.want {
			t.Errorf("NextKrampusCountdown(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestScrollSpeedFor(t *testing.T) {
	tests := []struct {
		level uint32
		want  float64
	}{
		{1, 2.0},
		{2, 2.2},
		{5, 2.8},
		{8, 3.4},
		{9, 3.5},
		{50, 3.5},
	}
	for _, tt := range tests {
		if got := ScrollSpeedFor(2.0, tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScrollSpeedFor(2, %d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLevelUpEveryFifthDelivery(t *testing.T) {
	m := startedMachine(t)
	for i := 0; i < 5; i++ {
		placeAlignedGift(m, 150+float64(i)*40)
		m.Step(Input{})
	}
	s := m.State()
	if s.Level != 2 {
		t.Fatalf("level = %d after 5 deliveries, want 2", s.Level)
	}
	if math.Abs(s.ScrollSpeed-2.2) > 1e-9 {
		t.Errorf("scroll = %v, want 2.2", s.ScrollSpeed)
	}
	if s.Feedback.LevelBanner == 0 {
		t.Error("level banner should be showing")
	}
}

func TestFixedProgressionKeepsLevel(t *testing.T) {
	p := DefaultParams()
	p.Progression = false
	m := startedMachine(t, WithParams(p))
	for i := 0; i < 5; i++ {
		placeAlignedGift(m, 150+float64(i)*40)
		m.Step(Input{})
	}
	if m.State().Level != 1 {
		t.Errorf("level = %d, want 1 with progression off", m.State().Level)
	}
}

func TestInDeliveryBoxAsymmetry(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   bool
	}{
		{"dead centre", 0, 0, true},
		{"just above", 0, -9.9, true},
		{"too high", 0, -10, false},
		{"deep", 0, 29.9, true},
		{"too deep", 0, 30, false},
		{"edge left", -24.9, 5, true},
		{"too far right", 25, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InDeliveryBox(200+tt.dx, 170+tt.dy, 200, 170); got != tt.want {
				t.Errorf("InDeliveryBox(dx=%v, dy=%v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestPickTarget(t *testing.T) {
	tests := []struct {
		name     string
		chimneys []Chimney
		want     int
	}{
		{"empty", nil, NoTarget},
		{"behind window", []Chimney{{X: PlayerX - 21}}, NoTarget},
		{"ahead of window", []Chimney{{X: PlayerX + 150}}, NoTarget},
		{"nearest wins", []Chimney{{X: PlayerX + 100}, {X: PlayerX + 30}}, 1},
		{"delivered skipped", []Chimney{{X: PlayerX + 5, Delivered: true}, {X: PlayerX + 60}}, 1},
		{"tie keeps first", []Chimney{{X: PlayerX - 10}, {X: PlayerX + 10}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickTarget(tt.chimneys); got != tt.want {
				t.Errorf("pickTarget = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDropSpawnsGiftAtPlayer(t *testing.T) {
	var cues cueLog
	m := startedMachine(t, WithCueSink(&cues))
	m.Step(Input{Drop: true})

	s := m.State()
	if len(s.Gifts) != 1 {
		t.Fatalf("gifts = %d, want 1", len(s.Gifts))
	}
	g := s.Gifts[0]
	if g.X != PlayerX || g.Y != s.Player.Y || g.VelY != giftStartVelY {
		t.Errorf("gift = %+v, want at the sleigh", g)
	}
	if g.Target != NoTarget {
		t.Errorf("target = %d, want none (first chimney is off screen)", g.Target)
	}
	if !cues.has(CueDrop) {
		t.Error("expected a drop cue")
	}
}

func TestVolleyPatterns(t *testing.T) {
	tests := []struct {
		pattern int
		shots   int
	}{
		{PatternAimed, 1},
		{PatternSpread, 3},
		{PatternWave, 3},
		{PatternCross, 2},
	}
	for _, tt := range tests {
		s := &State{Level: 1, Player: Player{Y: 100}}
		// frame/60 + level selects the pattern.
		s.Frame = uint32((tt.pattern+3)%4) * 60
		s.Krampus = Krampus{X: krampusHoldX, Y: 100, Active: true}

		if got := VolleyPattern(s.Frame, s.Level); got != tt.pattern {
			t.Fatalf("VolleyPattern = %d, want %d", got, tt.pattern)
		}
		fireVolley(s)
		if len(s.Projectiles) != tt.shots {
			t.Errorf("pattern %d fired %d shots, want %d", tt.pattern, len(s.Projectiles), tt.shots)
		}
		if s.Krampus.AttackTimer != FireRate(1) {
			t.Errorf("attack timer = %d, want %d", s.Krampus.AttackTimer, FireRate(1))
		}
	}
}

func TestAimedVolleysPointAtPlayer(t *testing.T) {
	tests := []struct {
		name     string
		pattern  int
		playerY  float64
		krampusY float64
	}{
		{"aimed level", PatternAimed, 100, 100},
		{"aimed up", PatternAimed, 40, 150},
		{"aimed down", PatternAimed, 190, 60},
		{"spread up", PatternSpread, 30, 120},
		{"spread down", PatternSpread, 180, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Level: 1, Player: Player{Y: tt.playerY}}
			s.Frame = uint32((tt.pattern+3)%4) * 60
			s.Krampus = Krampus{X: krampusHoldX, Y: tt.krampusY, Active: true}
			fireVolley(s)

			dx, dy := PlayerX-s.Krampus.X, tt.playerY-tt.krampusY
			want := math.Atan2(dy, dx)
			for _, p := range s.Projectiles {
				if speed := math.Hypot(p.VelX, p.VelY); math.Abs(speed-projectileSpeed) > 1e-9 {
					t.Errorf("shot speed = %v, want %v", speed, projectileSpeed)
				}
			}

			// The aimed shot, or the middle shot of a spread, flies straight at the player.
			center := s.Projectiles[len(s.Projectiles)/2]
			if cross := center.VelX*dy - center.VelY*dx; math.Abs(cross) > 1e-6 {
				t.Errorf("cross product = %v, want 0", cross)
			}
			if dot := center.VelX*dx + center.VelY*dy; dot <= 0 {
				t.Errorf("shot flies away from the player (dot = %v)", dot)
			}
			if tt.pattern == PatternSpread {
				for i, off := range []float64{-spreadAngle, 0, spreadAngle} {
					p := s.Projectiles[i]
					got := math.Atan2(p.VelY, p.VelX)
					if d := math.Remainder(got-(want+off), 2*math.Pi); math.Abs(d) > 1e-9 {
						t.Errorf("spread shot %d heading = %v, want %v", i, got, want+off)
					}
				}
			}
		})
	}
}

func TestVolleyWaitsForPosition(t *testing.T) {
	s := &State{Level: 1, Player: Player{Y: 100}}
	s.Krampus = Krampus{X: krampusEntryX, Y: 100, Active: true}
	fireVolley(s)
	if len(s.Projectiles) != 0 {
		t.Error("Krampus fired before reaching the hold line")
	}
}

func TestMissedChimneyRaisesNaughty(t *testing.T) {
	s := &State{Naughty: 95}
	s.Chimneys = []Chimney{{X: -31}, {X: -40, Delivered: true}, {X: 50}}
	sweep(s)

	if len(s.Chimneys) != 1 {
		t.Fatalf("chimneys = %d, want 1", len(s.Chimneys))
	}
	if s.Naughty != MaxNaughty {
		t.Errorf("naughty = %d, want clamp at %d", s.Naughty, MaxNaughty)
	}
}

func TestHealthPowerUpRaisesCap(t *testing.T) {
	tests := []struct {
		name              string
		health, cap       uint32
		wantHealth, wantC uint32
	}{
		{"below cap", 2, 3, 3, 3},
		{"at cap", 3, 3, 4, 4},
		{"at max", 5, 5, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Health: tt.health, HealthCap: tt.cap, Player: Player{Y: 100}}
			s.PowerUps = []PowerUp{{X: PlayerX, Y: 100, Kind: PowerUpHealth, Active: true}}
			resolvePowerUps(s, nopSink{})
			if s.Health != tt.wantHealth || s.HealthCap != tt.wantC {
				t.Errorf("health/cap = %d/%d, want %d/%d", s.Health, s.HealthCap, tt.wantHealth, tt.wantC)
			}
		})
	}
}

func TestStarPowerUp(t *testing.T) {
	s := &State{Health: 3, HealthCap: 3, Player: Player{Y: 100}}
	s.PowerUps = []PowerUp{{X: PlayerX + 10, Y: 95, Kind: PowerUpInvincible, Active: true}}
	resolvePowerUps(s, nopSink{})
	if s.StarPowerTimer != starPowerFrames {
		t.Errorf("star power = %d, want %d", s.StarPowerTimer, starPowerFrames)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := startedMachine(t)
	placeAlignedGift(m, 300)
	snap := m.Snapshot()
	snap.Chimneys[0].Delivered = true
	snap.Snowflakes[0].X = -999

	s := m.State()
	if s.Chimneys[0].Delivered || s.Snowflakes[0].X == -999 {
		t.Error("snapshot shares memory with the live state")
	}
}

func TestChimneySpawnRanges(t *testing.T) {
	tests := []struct {
		name string
		seed uint32
	}{
		{"default seed", core.DefaultSeed},
		{"small seed", 1},
		{"large seed", 0xDEADBEEF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{RNG: core.NewLCG(tt.seed)}
			for i := 0; i < 2000; i++ {
				s.Chimneys = s.Chimneys[:0]
				spawnChimneys(s)
				if len(s.Chimneys) != 1 {
					t.Fatalf("empty field spawned %d chimneys", len(s.Chimneys))
				}
				c := s.Chimneys[0]
				if c.X != chimneySpawnX {
					t.Fatalf("spawn x = %v, want %v", c.X, chimneySpawnX)
				}
				if c.Y < chimneyMinY || c.Y >= chimneyMaxY {
					t.Fatalf("spawn y = %v, want [%v, %v)", c.Y, chimneyMinY, chimneyMaxY)
				}
				if c.Style >= chimneyStyles {
					t.Fatalf("style = %d, want < %d", c.Style, chimneyStyles)
				}
				if s.NextGap < chimneyMinGap || s.NextGap >= chimneyMaxGap {
					t.Fatalf("gap = %v, want [%v, %v)", s.NextGap, chimneyMinGap, chimneyMaxGap)
				}
			}
		})
	}
}

func TestChimneyWaitsForGap(t *testing.T) {
	tests := []struct {
		name  string
		lastX float64
		want  int
	}{
		{"gap not yet open", chimneySpawnX - 149, 1},
		{"gap exactly open", chimneySpawnX - 150, 2},
		{"gap well open", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{RNG: core.NewLCG(7), NextGap: 150}
			s.Chimneys = []Chimney{{X: tt.lastX, Y: 170}}
			spawnChimneys(s)
			if len(s.Chimneys) != tt.want {
				t.Errorf("chimneys = %d, want %d", len(s.Chimneys), tt.want)
			}
		})
	}
}

func TestPowerUpSpawnsWhenCountdownHitsZero(t *testing.T) {
	tests := []struct {
		timer     uint32
		wantSteps int
	}{
		{0, 1},
		{1, 1},
		{3, 3},
		{powerUpFirstDelay, powerUpFirstDelay},
	}
	for _, tt := range tests {
		s := &State{RNG: core.NewLCG(99), PowerUpTimer: tt.timer}
		steps := 0
		for len(s.PowerUps) == 0 && steps < 2000 {
			spawnPowerUps(s)
			steps++
		}
		if steps != tt.wantSteps {
			t.Errorf("timer %d: spawned after %d steps, want %d", tt.timer, steps, tt.wantSteps)
		}
	}
}

func TestPowerUpRerollsDelayAndKind(t *testing.T) {
	kinds := map[PowerUpKind]int{}
	for seed := uint32(1); seed <= 300; seed++ {
		// Replay the draws the spawner makes: y, kind, then the next delay.
		rng := core.NewLCG(seed)
		wantY := rng.Range(powerUpMinY, powerUpMaxY)
		wantKind := PowerUpHealth
		if rng.Draw()%3 == 0 {
			wantKind = PowerUpInvincible
		}
		wantDelay := powerUpBaseDelay + rng.Draw()%powerUpDelayRange

		s := &State{RNG: core.NewLCG(seed)}
		spawnPowerUps(s)
		if len(s.PowerUps) != 1 {
			t.Fatalf("seed %d: power-ups = %d, want 1", seed, len(s.PowerUps))
		}
		p := s.PowerUps[0]
		if p.X != powerUpSpawnX || p.Y != wantY || p.Kind != wantKind || !p.Active {
			t.Errorf("seed %d: power-up = %+v, want kind %v at y %v", seed, p, wantKind, wantY)
		}
		if s.PowerUpTimer != wantDelay {
			t.Errorf("seed %d: next delay = %d, want %d", seed, s.PowerUpTimer, wantDelay)
		}
		if s.PowerUpTimer < powerUpBaseDelay || s.PowerUpTimer >= powerUpBaseDelay+powerUpDelayRange {
			t.Errorf("seed %d: next delay %d out of range", seed, s.PowerUpTimer)
		}
		kinds[p.Kind]++
	}
	if kinds[PowerUpHealth] == 0 || kinds[PowerUpInvincible] == 0 {
		t.Errorf("kind mix = %v, want both kinds", kinds)
	}
	if kinds[PowerUpHealth] < kinds[PowerUpInvincible] {
		t.Errorf("health should be the common kind, got %v", kinds)
	}
}
