package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/motion"
)

func TestDiscTurnsAtPlayerThenRingsAndLeaves(t *testing.T) {
	tw := newTestWorld(t)
	tw.Ledger.AddRaw(7)
	id, err := tw.SpawnEnemy(config.SpawnConfig{Archetype: "disc", X: 500, Y: 100})
	require.NoError(t, err)
	pos, m := tw.Position(id), tw.Motion(id)

	tw.tick(3, 0.1)
	assert.InDelta(t, 180, motion.HeadingDegrees(m), 1e-9)
	assert.Equal(t, 120.0, m.Speed)
	assert.False(t, m.HasTarget, "flies a fixed angle before turnX")

	pos.X = 420
	tw.tick(1, 0.1)
	require.True(t, m.HasTarget, "retargets at turnX")
	assert.Equal(t, tw.Config.Player.StartX, m.TargetX)
	assert.Equal(t, tw.Config.Player.StartY, m.TargetY)
	assert.Empty(t, tw.Registry.Bullets())

	pos.X, pos.Y = m.TargetX, m.TargetY
	tw.tick(1, 0.1)
	bullets := tw.Registry.Bullets()
	require.Len(t, bullets, 8, "ring on arrival")
	for i, h := range tw.headingsOf(bullets) {
		assert.InDelta(t, float64(i)*math.Pi/4, h, 1e-9, "ring bullet %d", i)
	}

	exits := []float64{135, 225}
	want := exits[NewRand(SeedFromScore(tw.Ledger.Score)).Intn(len(exits))]
	assert.InDelta(t, want, motion.HeadingDegrees(m), 1e-9, "exit heading follows the score seed")
	assert.False(t, m.HasTarget)
	assert.False(t, tw.Scheduler.RunningSlot(id, slotMove))
}

func TestDiscExitIsReproducibleForSameScore(t *testing.T) {
	exitOf := func() float64 {
		tw := newTestWorld(t)
		tw.Ledger.AddRaw(3)
		id, err := tw.SpawnEnemy(config.SpawnConfig{Archetype: "disc", X: 420, Y: 180})
		require.NoError(t, err)
		pos, m := tw.Position(id), tw.Motion(id)
		tw.tick(2, 0.1)
		pos.X, pos.Y = m.TargetX, m.TargetY
		tw.tick(1, 0.1)
		return motion.HeadingDegrees(m)
	}
	assert.Equal(t, exitOf(), exitOf())
}

func TestFlySeeksStandoffFiresAndLeaves(t *testing.T) {
	tw := newTestWorld(t)
	id, err := tw.SpawnEnemy(config.SpawnConfig{Archetype: "fly", X: 600, Y: 100})
	require.NoError(t, err)
	pos, m := tw.Position(id), tw.Motion(id)
	offsets := []float64{-40, 0, 40}

	for cycle := 0; cycle < 3; cycle++ {
		tw.tick(1, 1)
		require.True(t, m.HasTarget, "cycle %d seeks a standoff point", cycle)
		assert.Equal(t, tw.Config.Player.StartX+160, m.TargetX)
		wantY := tw.Config.Player.StartY + offsets[NewRand(SeedFromScore(tw.Ledger.Score)).Intn(len(offsets))]
		assert.Equal(t, wantY, m.TargetY)
		assert.Equal(t, 80.0, m.Speed)

		pos.X, pos.Y = m.TargetX, m.TargetY
		tw.tick(1, 1)
		assert.Zero(t, m.Speed, "stops to fire")
		assert.Len(t, tw.Registry.Bullets(), cycle+1)
	}

	tw.tick(1, 1)
	assert.False(t, m.HasTarget)
	assert.InDelta(t, math.Pi, m.Heading, 1e-9, "leaves to the left")
	assert.Equal(t, 120.0, m.Speed)
	assert.Len(t, tw.Registry.Bullets(), 3)
	assert.False(t, tw.Scheduler.RunningSlot(id, slotMove))
}

func TestTwitchPlaneTwitchesOnFrameSeedAndFiresEveryOther(t *testing.T) {
	tw := newTestWorld(t)
	id, err := tw.SpawnEnemy(config.SpawnConfig{Archetype: "twitch_plane", X: 600, Y: 180})
	require.NoError(t, err)
	pos, m := tw.Position(id), tw.Motion(id)
	headings := []float64{150, 180, 210}
	expected := func() float64 {
		return headings[NewRand(SeedFromFrame(tw.Frame)).Intn(len(headings))]
	}

	tw.tick(2, 0.5)
	assert.InDelta(t, 180, motion.HeadingDegrees(m), 1e-9, "enters flying left")

	pos.X = 540
	for twitch := 1; twitch <= 4; twitch++ {
		tw.tick(1, 0.5)
		assert.InDelta(t, expected(), motion.HeadingDegrees(m), 1e-9, "twitch %d", twitch)
		assert.Len(t, tw.Registry.Bullets(), twitch/2, "fires on every second twitch")
	}
}
