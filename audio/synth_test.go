package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peak(t *testing.T, s beep.Streamer, n int) float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	highest := 0.0
	for _, frame := range buf[:got] {
		if v := frame[0]; v > highest {
			highest = v
		} else if -v > highest {
			highest = -v
		}
	}
	return highest
}

func TestEveryCueHasATone(t *testing.T) {
	cues := []string{
		combat.CueDash, combat.CueKey, combat.CueBossKey, combat.CueCollect,
		combat.CuePowerUp, combat.CueHit, combat.CueDeath,
	}
	for _, name := range cues {
		t.Run(name, func(t *testing.T) {
			st, ok := buildCue(name, sampleRate)
			require.True(t, ok)
			assert.Greater(t, peak(t, st, 2048), 0.0)
		})
	}
	_, ok := buildCue("Nope", sampleRate)
	assert.False(t, ok)
}

func TestCueStreamsEnd(t *testing.T) {
	st, ok := buildCue(combat.CueCollect, sampleRate)
	require.True(t, ok)
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 1000; i++ {
		n, more := st.Stream(buf)
		total += n
		if !more {
			break
		}
	}
	assert.Equal(t, sampleRate.N(cueTones[combat.CueCollect][0].duration), total)
}

// drainedSynth stands in for an open speaker; the test reads the mixer.
func drainedSynth() *Synth {
	s := NewSynth()
	s.draining = true
	return s
}

func TestPlayCueMixesUntilMuted(t *testing.T) {
	s := drainedSynth()
	s.PlayCue(combat.CueHit, common.Vec2{})
	assert.Equal(t, 1, s.mixer.Len())

	s.SetMuted(true)
	s.PlayCue(combat.CueHit, common.Vec2{})
	s.PlayCue("unknown", common.Vec2{})
	assert.Equal(t, 1, s.mixer.Len())
	assert.True(t, s.Muted())
}

func TestLoopsArePerOwner(t *testing.T) {
	s := drainedSynth()
	s.StartLoop(combat.CueEnemyMove, 1, common.Vec2{})
	s.StartLoop(combat.CueEnemyMove, 1, common.Vec2{})
	s.StartLoop(combat.CueEnemyMove, 2, common.Vec2{})
	assert.Equal(t, 2, s.mixer.Len())
	assert.True(t, s.Playing(1))

	s.StopLoop(1)
	assert.False(t, s.Playing(1))
	assert.True(t, s.Playing(2))

	s.StartLoop(combat.CueEnemyMove, 1, common.Vec2{})
	assert.True(t, s.Playing(1))
	assert.Equal(t, 2, s.mixer.Len(), "restart reuses the paused loop")

	s.SetMuted(true)
	assert.False(t, s.Playing(2))
	s.Close()
	assert.Equal(t, 0, s.mixer.Len())
}

func TestSynthWithoutSpeakerDropsEverything(t *testing.T) {
	s := NewSynth()
	s.SetMuted(true)
	s.SetMuted(false)
	for i := 0; i < 50; i++ {
		s.PlayCue(combat.CueHit, common.Vec2{})
		s.StartLoop(combat.CueEnemyMove, combat.EntityID(i), common.Vec2{})
	}
	assert.Zero(t, s.mixer.Len())
	assert.False(t, s.Playing(3))
	assert.False(t, s.Muted())
}
