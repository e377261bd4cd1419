package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gonewx/stg/pkg/config"
)

func threeWaves() config.SideConfig {
	return config.SideConfig{
		FightWave: 2,
		Waves: []config.WaveConfig{
			{Name: "w0", At: 0},
			{Name: "w1", At: 1},
			{Name: "w2", At: 2},
		},
	}
}

func TestWaveActivationIsIdempotent(t *testing.T) {
	tl := NewWaveTimeline(threeWaves())

	assert.True(t, tl.Activate(0))
	assert.False(t, tl.Activate(0), "second activation must be a no-op")

	// 第 0 波已激活，时间线经过它时不再返回
	assert.Equal(t, []int{1}, tl.Update(1.5, false))
	assert.Equal(t, 1, tl.Index())
	assert.False(t, tl.Activate(1))
}

func TestWaveTimelineClampsIndexAndPauses(t *testing.T) {
	tl := NewWaveTimeline(threeWaves())
	assert.Equal(t, 0, tl.Index())

	assert.Empty(t, tl.Update(5, true), "paused timeline must not advance")
	assert.Equal(t, 0.0, tl.Elapsed())

	assert.Equal(t, []int{0, 1, 2}, tl.Update(5, false))
	assert.True(t, tl.Finished())
	assert.Equal(t, 2, tl.Index())
	assert.True(t, tl.IsFightWave(2))
	assert.False(t, tl.IsFightWave(1))

	assert.Empty(t, tl.Update(5, false))
	assert.Equal(t, 2, tl.Index(), "index never exceeds the last wave")
}

func TestWaveIndexOutOfRangePanics(t *testing.T) {
	tl := NewWaveTimeline(threeWaves())
	assert.Panics(t, func() { tl.Activate(3) })
	assert.Panics(t, func() { tl.Wave(-1) })
}

func TestPhaseFlags(t *testing.T) {
	tests := []struct {
		phase    Phase
		pausable bool
		terminal bool
	}{
		{PhaseIntro, false, false},
		{PhaseWavesA, true, false},
		{PhaseMiniboss, true, false},
		{PhaseTransitionB, false, false},
		{PhaseBossTransition, false, false},
		{PhaseBoss, true, false},
		{PhaseEndOfStage, false, false},
		{PhaseStageComplete, false, true},
		{PhaseGameOver, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.pausable, tt.phase.Pausable())
			assert.Equal(t, tt.terminal, tt.phase.Terminal())
		})
	}
}
