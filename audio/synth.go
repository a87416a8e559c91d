// Package audio plays the game's audio cues as generated tones through
// the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
)

const sampleRate = beep.SampleRate(44100)

// Synth is a combat.CueSink. Cues and loops are dropped until something
// drains the mixer, so a synth whose speaker never opened stays empty even
// when unmuted.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loops       map[combat.EntityID]*beep.Ctrl
	muted       bool
	initialized bool
	// draining is set once a consumer streams the mixer.
	draining    bool
}

func NewSynth() *Synth {
	return &Synth{
		mixer: &beep.Mixer{},
		loops: make(map[combat.EntityID]*beep.Ctrl),
	}
}

// Init opens the speaker and starts playing the mixer.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.draining = true
	return nil
}

// Close silences everything and detaches from the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withMixer(func() {
		s.mixer.Clear()
	})
	clear(s.loops)
	if s.initialized {
		speaker.Clear()
		s.initialized = false
	}
	s.draining = false
}

// SetMuted drops future cues and pauses running loops while muted.
func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	if muted {
		s.withMixer(func() {
			for _, ctrl := range s.loops {
				ctrl.Paused = true
			}
		})
	}
}

func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Synth) PlayCue(name string, _ common.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted || !s.draining {
		return
	}
	cue, ok := cueTones[name]
	if !ok || len(cue) == 0 {
		return
	}
	streamer, _ := buildCue(name, sampleRate)
	s.withMixer(func() {
		s.mixer.Add(streamer)
	})
}

// StartLoop resumes owner's loop, creating it on first use. Only one loop
// runs per owner.
func (s *Synth) StartLoop(_ string, owner combat.EntityID, _ common.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.muted || !s.draining {
		return
	}
	s.withMixer(func() {
		if ctrl, ok := s.loops[owner]; ok {
			ctrl.Paused = false
			return
		}
		ctrl := &beep.Ctrl{Streamer: buildLoop(sampleRate)}
		s.loops[owner] = ctrl
		s.mixer.Add(ctrl)
	})
}

func (s *Synth) StopLoop(owner combat.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withMixer(func() {
		if ctrl, ok := s.loops[owner]; ok {
			ctrl.Paused = true
		}
	})
}

// Playing reports whether owner has an unpaused loop.
func (s *Synth) Playing(owner combat.EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.loops[owner]
	return ok && !ctrl.Paused
}

// withMixer runs fn under the speaker lock once the speaker is playing
// the mixer. Callers hold s.mu.
func (s *Synth) withMixer(fn func()) {
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

var _ combat.CueSink = (*Synth)(nil)
