package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/santa-arcade/internal/core"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	duration int
	wave     Wave
	rate     beep.SampleRate
	noise    core.LCG
}

// NewOscillator creates an oscillator that plays for the given duration.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    core.NewLCG(core.DefaultSeed),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = float64(o.noise.Draw())/16383.5 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over duration with the given attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Note is one pitch of a tune. A zero frequency is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// tone is a shaped note.
func tone(n Note, wave Wave, rate beep.SampleRate) beep.Streamer {
	if n.Freq == 0 {
		return beep.Silence(rate.N(n.Dur))
	}
	release := n.Dur / 3
	return NewEnvelope(NewOscillator(n.Freq, n.Dur, wave, rate), n.Dur, 5*time.Millisecond, release, rate)
}

// Tune plays the notes once in sequence.
func Tune(notes []Note, wave Wave, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, tone(n, wave, rate))
	}
	return beep.Seq(parts...)
}

// loop replays a tune forever by rebuilding it each time it ends.
type loop struct {
	build func() beep.Streamer
	cur   beep.Streamer
}

// Loop returns an endless stream of the tune. An empty tune is silence.
func Loop(notes []Note, wave Wave, rate beep.SampleRate) beep.Streamer {
	if len(notes) == 0 {
		return beep.Silence(-1)
	}
	build := func() beep.Streamer { return Tune(notes, wave, rate) }
	return &loop{build: build, cur: build()}
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		k, more := l.cur.Stream(samples[n:])
		n += k
		if !more || k == 0 {
			l.cur = l.build()
		}
	}
	return n, true
}

func (l *loop) Err() error { return nil }
