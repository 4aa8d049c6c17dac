// Package audio turns game cues into synthesized sound effects and looping
// background music through the system speaker.
package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate of every generated stream.
const SampleRate = beep.SampleRate(44100)

// MusicPrefix marks cues that switch the background track.
const MusicPrefix = "music:"

// Player mixes cue effects over the current music track.
// Cues arriving before Init only update the selected track.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	track  string
	muted  bool
	ready  bool
	logger *log.Logger
}

// NewPlayer creates a player. A nil logger discards messages.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true

	if p.track != "" {
		p.startTrack(p.track)
	}
	return nil
}

// Play handles one cue. Music cues replace the current track, the rest
// play once. Unknown cues are ignored.
func (p *Player) Play(cue string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if track, ok := strings.CutPrefix(cue, MusicPrefix); ok {
		if track == p.track {
			return
		}
		p.track = track
		if p.ready {
			p.startTrack(track)
		}
		return
	}

	if !p.ready || p.muted {
		return
	}
	s := Effect(cue, SampleRate)
	if s == nil {
		if p.logger != nil {
			p.logger.Debug("no sound for cue", "cue", cue)
		}
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// startTrack swaps the music streamer. Callers hold p.mu.
func (p *Player) startTrack(track string) {
	speaker.Lock()
	defer speaker.Unlock()

	if p.music != nil {
		p.music.Streamer = nil
		p.music.Paused = true
	}
	s := Music(track, SampleRate)
	if s == nil {
		p.music = nil
		return
	}
	p.music = &beep.Ctrl{Streamer: s, Paused: p.muted}
	p.mixer.Add(p.music)
}

// SetMuted silences or restores all output.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if p.ready && p.music != nil {
		speaker.Lock()
		p.music.Paused = muted
		speaker.Unlock()
	}
}

// Muted reports whether output is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Track returns the name of the selected music track.
func (p *Player) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.music = nil
	p.ready = false
}
