package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
	waveNoise
)

// oscillator produces a single wave. A zero duration runs forever.
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newOscillator(freq, sweep float64, duration time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	o := &oscillator{freq: freq, sweep: sweep, wave: wave, rate: rate}
	if duration > 0 {
		o.duration = rate.N(duration)
	}
	if wave == waveNoise {
		o.noise = rand.New(rand.NewSource(int64(freq*1000) + 1))
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration > 0 && o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case waveSaw:
			val = 2 * (o.phase - 0.5)
		case waveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release over a fixed-length stream.
type fade struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *fade {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, i > 0
		}
		vol := 1.0
		if f.attack > 0 && f.position < f.attack {
			vol = float64(f.position) / float64(f.attack)
		}
		if start := f.total - f.release; f.release > 0 && f.position >= start {
			vol = math.Max(float64(f.total-f.position)/float64(f.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone describes one generated cue.
type tone struct {
	freq     float64
	sweep    float64
	duration time.Duration
	wave     waveType
	volume   float64
}

var cueTones = map[string][]tone{
	"Dash":    {{freq: 1, duration: 140 * time.Millisecond, wave: waveNoise, volume: 0.25}},
	"Hit":     {{freq: 180, duration: 80 * time.Millisecond, wave: waveSquare, volume: 0.2}},
	"Death":   {{freq: 220, sweep: -400, duration: 350 * time.Millisecond, wave: waveSaw, volume: 0.25}},
	"Collect": {{freq: 880, duration: 100 * time.Millisecond, wave: waveSine, volume: 0.3}},
	"Key": {
		{freq: 660, duration: 150 * time.Millisecond, wave: waveSine, volume: 0.25},
		{freq: 990, duration: 150 * time.Millisecond, wave: waveSine, volume: 0.15},
	},
	"BossKey": {
		{freq: 440, duration: 300 * time.Millisecond, wave: waveSine, volume: 0.2},
		{freq: 660, duration: 300 * time.Millisecond, wave: waveSine, volume: 0.15},
		{freq: 880, duration: 300 * time.Millisecond, wave: waveSine, volume: 0.1},
	},
	"PowerUp": {{freq: 300, sweep: 2400, duration: 400 * time.Millisecond, wave: waveSaw, volume: 0.2}},
}

// loopTone is the continuous hum used for looped cues.
var loopTone = tone{freq: 70, wave: waveSquare, volume: 0.05}

func buildCue(name string, rate beep.SampleRate) (beep.Streamer, bool) {
	tones, ok := cueTones[name]
	if !ok {
		return nil, false
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := newOscillator(t.freq, t.sweep, t.duration, t.wave, rate)
		shaped := newFade(osc, t.duration, 5*time.Millisecond, t.duration/2, rate)
		parts = append(parts, withVolume(shaped, t.volume))
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	return beep.Mix(parts...), true
}

func buildLoop(rate beep.SampleRate) beep.Streamer {
	return withVolume(newOscillator(loopTone.freq, 0, 0, loopTone.wave, rate), loopTone.volume)
}
