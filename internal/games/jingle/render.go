package jingle

import (
	"fmt"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar  = '@'
	KrampusChar = 'K'
	GiftChar    = '■'
	TrapChar    = '^'
	SnowChar    = '.'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := &g.s
	w, h := dst.Width(), dst.Height()-1
	dx, dy := s.ShakeOffset()
	sx := func(x float64) int { return core.Scale(x+dx, ArenaW, w) }
	sy := func(y float64) int { return 1 + core.Scale(y+dy, ArenaH, h) }

	for _, f := range s.Snow {
		col := core.ColorDarkGray
		if f.Size == 3 {
			col = core.ColorGray
		}
		dst.SetColored(sx(f.X), sy(f.Y), SnowChar, col)
	}

	if s.Mode == ModeTitle {
		drawCenteredMessage(dst, "JINGLE DASH", "Grab every gift before the bells stop. Enter to start")
		if s.HighScore > 0 {
			dst.DrawTextCenteredColored(dst.Height()/2+4, fmt.Sprintf("Best: %d", s.HighScore), core.ColorGold)
		}
		return
	}

	dst.DrawBoxColored(core.NewRect(0, 1, w, h), borderColor(s))

	mode := s.Mode
	if mode == ModePaused {
		mode = s.PrevMode
	}
	for _, t := range s.Traps {
		switch mode {
		case ModeHurry, ModeKrampus, ModeGameOver:
			dst.SetColored(sx(t.X), sy(t.Y), TrapChar, core.ColorBrightRed)
		}
	}
	for _, gift := range s.Gifts {
		if !gift.Collected {
			dst.SetColored(sx(gift.X), sy(gift.Y), GiftChar, core.ColorBrightGreen)
		}
	}
	if mode == ModeKrampus || (mode == ModeGameOver && s.Krampus.X > 10) {
		dst.SetColored(sx(s.Krampus.X), sy(s.Krampus.Y), KrampusChar, core.ColorRed)
	}
	dst.SetColored(sx(s.Player.X), sy(s.Player.Y), PlayerChar, core.ColorBrightWhite)

	for _, p := range s.Popups {
		dst.DrawTextColored(sx(p.X), sy(p.Y), fmt.Sprintf("+%d", p.Value), core.ColorGold)
	}

	g.drawHUD(dst, mode)

	switch s.Mode {
	case ModePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case ModeGameOver:
		drawCenteredMessage(dst, "CAUGHT BY KRAMPUS",
			fmt.Sprintf("Round %d  Score: %d  Best: %d  |  R to restart", s.Round, s.Score, s.HighScore))
	}
}

func borderColor(s *State) core.Color {
	if s.Flash > 0 {
		return s.FlashColor
	}
	return core.ColorGray
}

func (g *Game) drawHUD(dst *core.Screen, mode Mode) {
	s := &g.s
	var phase string
	var col core.Color
	switch mode {
	case ModeJingle:
		phase, col = fmt.Sprintf("JINGLE %ds", s.JingleTimer), core.ColorBrightGreen
	case ModeHurry:
		phase, col = fmt.Sprintf("HURRY %ds", s.HurryTimer), core.ColorOrange
	case ModeKrampus:
		phase, col = fmt.Sprintf("RUN! %ds", s.KrampusTimer), core.ColorBrightRed
	default:
		phase, col = "", core.ColorWhite
	}
	left := fmt.Sprintf("Round %d  Score: %d  Gifts: %d/%d", s.Round, s.Score, len(s.Gifts)-s.GiftsLeft(), len(s.Gifts))
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(dst.Width()-len([]rune(phase))-1, 0, phase, col)
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
