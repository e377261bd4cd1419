package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerIgnoresPausedTicks(t *testing.T) {
	var timer Timer
	timer.Advance(0.25, false)

	for i := 0; i < 100; i++ {
		timer.Advance(1.0/60, true)
	}
	assert.Equal(t, 0.25, timer.Elapsed, "paused ticks must not move the timer")

	const n = 30
	dt := 1.0 / 60
	for i := 0; i < n; i++ {
		timer.Advance(dt, false)
	}
	assert.InDelta(t, 0.25+n*dt, timer.Elapsed, 1e-9)
}

func TestTimerReachedToleratesAccumulatedError(t *testing.T) {
	var timer Timer
	for i := 0; i < 120; i++ {
		timer.Advance(1.0/60, false)
	}
	assert.True(t, timer.Reached(2.0))

	timer.Reset()
	assert.False(t, timer.Reached(0.1))
}
