package sleigh

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/santa-arcade/internal/core"
	"github.com/vovakirdan/santa-arcade/internal/games/sleigh/sim"
)

// Visual characters for rendering
const (
	ChimneyChar    = '█'
	ChimneyCap     = '▀'
	GiftChar       = '■'
	ProjectileChar = '•'
	HeartChar      = '♥'
	StarChar       = '★'
	SnowChar       = '·'
	BigSnowChar    = '*'
	GroundChar     = '▁'
	SleighSprite   = "~=[▄▄]"
	KrampusSprite  = "}Ж{"
)

var chimneyColors = [...]core.Color{core.ColorBrown, core.ColorRed, core.ColorGray}

var flashColors = map[sim.FlashKind]core.Color{
	sim.FlashWhite:  core.ColorBrightWhite,
	sim.FlashGold:   core.ColorGold,
	sim.FlashRed:    core.ColorBrightRed,
	sim.FlashGreen:  core.ColorBrightGreen,
	sim.FlashOrange: core.ColorOrange,
}

// view maps world coordinates to screen cells. Row 0 is the HUD.
type view struct {
	w, h   int
	dx, dy float64
}

func newView(dst *core.Screen, s *sim.State) view {
	dx, dy := sim.ShakeOffset(s)
	return view{w: dst.Width(), h: dst.Height() - 1, dx: dx, dy: dy}
}

func (v view) x(wx float64) int { return core.Scale(wx+v.dx, sim.ScreenW, v.w) }
func (v view) y(wy float64) int { return 1 + core.Scale(wy+v.dy, sim.ScreenH, v.h) }

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.machine.State()
	v := newView(dst, s)

	drawSnow(dst, v, s)
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorWhite)

	if s.Mode == sim.ModeTitle {
		drawTitle(dst, s)
		return
	}

	for _, c := range s.Chimneys {
		drawChimney(dst, v, c)
	}
	for _, p := range s.PowerUps {
		r, col := HeartChar, core.ColorBrightRed
		if p.Kind == sim.PowerUpInvincible {
			r, col = StarChar, core.ColorGold
		}
		dst.SetColored(v.x(p.X), v.y(sim.PowerUpBobY(p)), r, col)
	}
	for _, gift := range s.Gifts {
		dst.SetColored(v.x(gift.X), v.y(gift.Y), GiftChar, core.ColorBrightGreen)
	}
	for _, p := range s.Particles {
		dst.SetColored(v.x(p.X), v.y(p.Y), '*', particleColor(p.Color))
	}
	drawKrampus(dst, v, s)
	for _, p := range s.Projectiles {
		dst.SetColored(v.x(p.X), v.y(p.Y), ProjectileChar, core.ColorBrightMagenta)
	}
	drawSleigh(dst, v, s)
	drawPopups(dst, v, s.Feedback.Popups)

	drawHUD(dst, s)
	drawBanners(dst, s)

	if s.Feedback.Flash > 0 {
		dst.DrawBoxColored(core.NewRect(0, 1, dst.Width(), dst.Height()-1), flashColors[s.Feedback.FlashKind])
	}

	switch s.Mode {
	case sim.ModePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case sim.ModeGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  Press R to restart", s.Score, s.HighScore))
	}
}

func drawSnow(dst *core.Screen, v view, s *sim.State) {
	for _, f := range s.Snowflakes {
		r, col := SnowChar, core.ColorGray
		if f.Size >= 3 {
			r, col = BigSnowChar, core.ColorWhite
		}
		dst.SetColored(v.x(f.X), v.y(f.Y), r, col)
	}
}

func drawChimney(dst *core.Screen, v view, c sim.Chimney) {
	x := v.x(c.X)
	top := v.y(c.Y)
	col := chimneyColors[int(c.Style)%len(chimneyColors)]
	// Shafts run down to the ground row.
	shaft := dst.Height() - 1 - top
	dst.DrawVLine(x, top, shaft, ChimneyChar, col)
	dst.DrawVLine(x+1, top, shaft, ChimneyChar, col)
	capColor := core.ColorWhite
	if c.Delivered {
		capColor = core.ColorGold
	}
	dst.SetColored(x, top, ChimneyCap, capColor)
	dst.SetColored(x+1, top, ChimneyCap, capColor)
}

// drawPopups clips score labels to the playfield so a label drifting
// upward never overwrites the HUD row.
func drawPopups(dst *core.Screen, v view, popups []sim.Popup) {
	field := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	for _, p := range popups {
		x, y := v.x(p.X), v.y(p.Y)
		if !field.Contains(x, y) {
			continue
		}
		dst.DrawTextColored(x, y, fmt.Sprintf("+%d", p.Value), core.ColorGold)
	}
}

func drawSleigh(dst *core.Screen, v view, s *sim.State) {
	// Blink while the hit grace window runs.
	if s.InvincibleTimer > 0 && (s.Frame/4)%2 == 0 {
		return
	}
	col := core.ColorBrightRed
	if s.StarPowerTimer > 0 {
		col = core.ColorGold
	}
	x := v.x(sim.PlayerX) - len([]rune(SleighSprite)) + 1
	y := v.y(s.Player.Y)
	switch {
	case s.Player.Tilt < -0.15:
		dst.SetColored(x-1, y+1, '╱', core.ColorGray)
	case s.Player.Tilt > 0.15:
		dst.SetColored(x-1, y-1, '╲', core.ColorGray)
	}
	dst.DrawTextColored(x, y, SleighSprite, col)
}

func drawKrampus(dst *core.Screen, v view, s *sim.State) {
	if !s.Krampus.Active {
		return
	}
	bob := math.Sin(float64(s.Frame)*0.1) * 3
	x := v.x(s.Krampus.X) - 1
	dst.DrawTextColored(x, v.y(s.Krampus.Y+bob), KrampusSprite, core.ColorRed)
}

func drawHUD(dst *core.Screen, s *sim.State) {
	hearts := strings.Repeat(string(HeartChar), int(s.Health)) +
		strings.Repeat("♡", int(s.HealthCap-min(s.Health, s.HealthCap)))

	const meterW = 10
	filled := int(s.Naughty) * meterW / sim.MaxNaughty
	meter := strings.Repeat("█", filled) + strings.Repeat("░", meterW-filled)

	meterColor := core.ColorGreen
	if s.Naughty >= sim.NaughtyThreshold {
		meterColor = core.ColorBrightRed
	} else if s.Naughty >= sim.NaughtyThreshold/2 {
		meterColor = core.ColorYellow
	}

	x := 1
	x += drawField(dst, x, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightWhite)
	x += drawField(dst, x, fmt.Sprintf("Best: %d", s.HighScore), core.ColorGray)
	x += drawField(dst, x, fmt.Sprintf("Lv %d", s.Level), core.ColorCyan)
	x += drawField(dst, x, hearts, core.ColorBrightRed)
	x += drawField(dst, x, "Naughty", core.ColorWhite)
	x += drawField(dst, x, meter, meterColor)
	if s.ComboCount > 1 {
		drawField(dst, x, fmt.Sprintf("x%d combo", s.ComboCount), core.ColorGold)
	}
}

func drawField(dst *core.Screen, x int, text string, col core.Color) int {
	dst.DrawTextColored(x, 0, text, col)
	return len([]rune(text)) + 2
}

func drawBanners(dst *core.Screen, s *sim.State) {
	row := 2
	switch {
	case s.Mode == sim.ModeKrampusWarning && (s.Frame/8)%2 == 0:
		dst.DrawTextCenteredColored(row, "!! KRAMPUS IS COMING !!", core.ColorBrightRed)
	case s.Feedback.LevelBanner > 0:
		dst.DrawTextCenteredColored(row, fmt.Sprintf("LEVEL %d", s.Level), core.ColorGold)
	case s.Feedback.Tutorial > 0:
		dst.DrawTextCenteredColored(row, "W/S fly  Space drop a gift  P pause", core.ColorGray)
	}
}

func drawTitle(dst *core.Screen, s *sim.State) {
	best := "No best score yet"
	if s.HighScore > 0 {
		best = fmt.Sprintf("Best: %d", s.HighScore)
	}
	drawCenteredMessage(dst, "SLEIGH RIDE", "Press Enter to take off")
	dst.DrawTextCenteredColored(dst.Height()/2+4, best, core.ColorGold)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))
	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBoxColored(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}

func particleColor(c uint8) core.Color {
	switch c {
	case 0:
		return core.ColorGold
	case 1:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightGreen
	}
}
