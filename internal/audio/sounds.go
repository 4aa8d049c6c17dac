package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Pitches used by the tunes, in Hz.
const (
	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	f4 = 349.23
	g4 = 392.00
	a4 = 440.00
	b4 = 493.88
	c5 = 523.25
	d5 = 587.33
	e5 = 659.25
	g5 = 783.99
	a3 = 220.00
	e3 = 164.81
	c3 = 130.81
)

const beat = 180 * time.Millisecond

func note(freq float64, beats float64) Note {
	return Note{Freq: freq, Dur: time.Duration(beats * float64(beat))}
}

// effect describes a one-shot sound.
type effect struct {
	notes []Note
	wave  Wave
	vol   float64
}

var effectTable = map[string]effect{
	"start":     {[]Note{note(c5, 0.5), note(e5, 0.5), note(g5, 1)}, WaveSquare, 0.25},
	"drop":      {[]Note{note(g4, 0.3), note(c4, 0.3)}, WaveTriangle, 0.3},
	"delivery":  {[]Note{note(e5, 0.4), note(g5, 0.8)}, WaveSine, 0.4},
	"pickup":    {[]Note{note(e5, 0.4), note(g5, 0.8)}, WaveSine, 0.4},
	"hit":       {[]Note{note(0, 0.1), note(110, 0.8)}, WaveNoise, 0.35},
	"trap":      {[]Note{note(a3, 0.5), note(e3, 1)}, WaveSquare, 0.3},
	"powerup":   {[]Note{note(c5, 0.25), note(e5, 0.25), note(g5, 0.25), note(c5*2, 0.5)}, WaveSine, 0.35},
	"level-up":  {[]Note{note(g4, 0.4), note(c5, 0.4), note(e5, 0.4), note(g5, 1)}, WaveSquare, 0.2},
	"bonus":     {[]Note{note(g4, 0.4), note(c5, 0.4), note(e5, 0.4), note(g5, 1)}, WaveSquare, 0.2},
	"warning":   {[]Note{note(a4, 0.5), note(0, 0.25), note(a4, 0.5), note(0, 0.25), note(a4, 0.5)}, WaveSquare, 0.25},
	"hurry":     {[]Note{note(a4, 0.3), note(0, 0.1), note(a4, 0.3)}, WaveSquare, 0.25},
	"survive":   {[]Note{note(c5, 0.5), note(g4, 0.5), note(c5, 0.5), note(e5, 1.5)}, WaveTriangle, 0.35},
	"game-over": {[]Note{note(g4, 1), note(e4, 1), note(c4, 2)}, WaveTriangle, 0.35},
}

// Jingle Bells and friends, reduced to the first phrase.
var musicTable = map[string][]Note{
	"title": {
		note(e4, 1), note(e4, 1), note(e4, 2), note(e4, 1), note(e4, 1), note(e4, 2),
		note(e4, 1), note(g4, 1), note(c4, 1.5), note(d4, 0.5), note(e4, 4),
	},
	"delivering": {
		note(g4, 1), note(e5, 1), note(d5, 1), note(c5, 1), note(g4, 3), note(0, 1),
		note(g4, 1), note(e5, 1), note(d5, 1), note(c5, 1), note(a4, 3), note(0, 1),
	},
	"jingle": {
		note(c5, 1), note(b4, 1), note(a4, 1), note(g4, 1), note(f4, 2), note(e4, 2),
	},
	"hurry": {
		note(e4, 0.5), note(g4, 0.5), note(e4, 0.5), note(g4, 0.5),
	},
	"krampus": {
		note(c3, 1), note(0, 0.5), note(c3, 0.5), note(e3, 1), note(0, 1),
		note(c3, 1), note(0, 0.5), note(c3, 0.5), note(a3/2, 2),
	},
	"game-over": {
		note(e4, 2), note(d4, 2), note(c4, 4), note(0, 4),
	},
}

const musicVolume = 0.15

// Effect returns the streamer for a one-shot cue, or nil if the cue has
// no sound.
func Effect(cue string, rate beep.SampleRate) beep.Streamer {
	e, ok := effectTable[cue]
	if !ok {
		return nil
	}
	return newVolume(Tune(e.notes, e.wave, rate), e.vol)
}

// Music returns an endless streamer for a music track, or nil if the
// track is unknown.
func Music(track string, rate beep.SampleRate) beep.Streamer {
	notes, ok := musicTable[track]
	if !ok {
		return nil
	}
	wave := WaveTriangle
	if track == "krampus" {
		wave = WaveSquare
	}
	return newVolume(Loop(notes, wave, rate), musicVolume)
}
