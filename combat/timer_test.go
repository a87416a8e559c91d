package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerExpiresOnBoundary(t *testing.T) {
	var tm Timer
	tm.Start(0.5)
	expired := 0
	for i := 0; i < 5; i++ {
		if tm.Tick(0.1) {
			expired = i + 1
		}
	}
	assert.Equal(t, 5, expired)
	assert.False(t, tm.IsActive())
	assert.Zero(t, tm.Overflow())
}

func TestTimerOverflowAndZeroDuration(t *testing.T) {
	var tm Timer
	tm.Start(0.25)
	assert.False(t, tm.Tick(0.2))
	assert.True(t, tm.Tick(0.2))
	assert.InDelta(t, 0.15, tm.Overflow(), 1e-9)

	tm.Start(0)
	assert.False(t, tm.IsActive())
	assert.False(t, tm.Tick(1))

	var nilTimer *Timer
	assert.False(t, nilTimer.Tick(1))
	assert.Zero(t, nilTimer.Remaining())
}
