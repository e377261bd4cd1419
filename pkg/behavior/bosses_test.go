package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
)

func TestHydraSwitchesToRoundRobinAtFourHeads(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "hydra", X: 520, Y: 180})
	require.NoError(t, err)
	h := boss.(*Hydra)
	require.Len(t, h.Heads(), 6)
	assert.Equal(t, 60, h.HP())

	tw.tick(1, 0.1)
	assert.Equal(t, 6, tw.Registry.Count(registry.Bullets), "volley: every head fires together")

	h.TakeDamage(tw.World, 10)
	assert.Equal(t, hydraVolley, h.Phase())
	h.TakeDamage(tw.World, 10)
	assert.Equal(t, 4, h.HeadsRemaining())
	assert.Equal(t, hydraRoundRobin, h.Phase())
	assert.Equal(t, 40, h.HP())
	assert.True(t, tw.Scheduler.RunningSlot(h.Root(), slotFire))

	before := tw.Registry.Count(registry.Bullets)
	tw.tick(1, 0.1)
	assert.Equal(t, before+1, tw.Registry.Count(registry.Bullets), "round robin: one head per turn")

	for !h.Defeated() {
		h.TakeDamage(tw.World, 10)
	}
	assert.Equal(t, 0, h.HP())
}

func TestHydraNecksAreImmune(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "hydra", X: 520, Y: 180})
	require.NoError(t, err)
	h := boss.(*Hydra)

	neck := h.heads[0].necks[0]
	pos := tw.Position(neck)
	b := entities.NewPlayerBullet(tw.EM, tw.Registry, pos.X, pos.Y, 0, 480, components.WeaponNormal, 1)
	assert.Equal(t, HitImmune, h.CheckCollision(tw.World, b, 1))
	assert.Equal(t, 60, h.HP())

	far := entities.NewPlayerBullet(tw.EM, tw.Registry, 10, 10, 0, 480, components.WeaponNormal, 1)
	assert.Equal(t, HitNone, h.CheckCollision(tw.World, far, 1))
}

func TestCoreTiersAndSinglePulse(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "core", X: 520, Y: 180})
	require.NoError(t, err)
	co := boss.(*Core)

	assert.Equal(t, HitImmune, co.TakeDamage(tw.World, 10), "closed shell protects the core")
	tw.Health(co.Root()).Immune = false

	for _, dmg := range []int{20, 10, 25, 25, 11} {
		require.Equal(t, HitDamage, co.TakeDamage(tw.World, dmg))
	}
	assert.Equal(t, 9, co.HP())
	assert.Equal(t, []int{1, 2, 3}, tw.presentation.Tiers(co.Root()))
	assert.True(t, co.Pulsing())

	co.TakeDamage(tw.World, 4)
	assert.Equal(t, []int{1, 2, 3}, tw.presentation.Tiers(co.Root()), "tier changes only on bucket change")

	flashes := func() int {
		n := 0
		for _, c := range tw.presentation.Calls {
			if c.Entity == co.Root() && c.Method == "flash" {
				n++
			}
		}
		return n
	}
	before := flashes()
	tw.tick(1, 0.01)
	assert.Equal(t, before+1, flashes(), "one pulse routine")
}

func TestCorePulseQuickensAsHPDrops(t *testing.T) {
	period := 0.8
	assert.InDelta(t, period/2, pulseInterval(period, corePulseRatio), 1e-9)
	assert.InDelta(t, period/2, pulseInterval(period, 0.5), 1e-9, "clamped above the pulse threshold")
	assert.InDelta(t, period*3/8, pulseInterval(period, corePulseRatio/2), 1e-9)
	assert.InDelta(t, period/4, pulseInterval(period, 0), 1e-9)
}

func TestCoreOpensOnCycle(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "core", X: 520, Y: 180, Params: map[string]float64{"closedTime": 1, "openTime": 1}})
	require.NoError(t, err)
	co := boss.(*Core)

	tw.tick(1, 0.5)
	assert.False(t, co.Open())
	assert.True(t, tw.Health(co.Root()).Immune)

	tw.tick(2, 0.5)
	assert.True(t, co.Open())
	assert.False(t, tw.Health(co.Root()).Immune)
	assert.Contains(t, tw.presentation.Triggers(co.Root()), game.TriggerOpen)
}

func TestMirrorLivesAndRespawnInvincibility(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "mirror", X: 500, Y: 180})
	require.NoError(t, err)
	mr := boss.(*Mirror)
	assert.Equal(t, 30, mr.MaxHP())
	assert.Equal(t, 30, mr.HP())

	assert.Equal(t, HitDamage, mr.TakeDamage(tw.World, 10))
	assert.Equal(t, 2, mr.Lives())
	assert.Equal(t, 20, mr.HP())
	assert.False(t, mr.Defeated())
	assert.Equal(t, HitImmune, mr.TakeDamage(tw.World, 10), "invincible right after losing a life")

	tw.tick(30, 0.1)
	assert.Equal(t, HitDamage, mr.TakeDamage(tw.World, 10))
	assert.Equal(t, 1, mr.Lives())

	tw.tick(30, 0.1)
	mr.TakeDamage(tw.World, 10)
	assert.True(t, mr.Defeated())
	assert.Equal(t, 0, mr.HP())
}

func TestMirrorBarrelRollsWhenBulletsCluster(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "mirror", X: 500, Y: 180})
	require.NoError(t, err)
	mr := boss.(*Mirror)

	for _, x := range []float64{450, 460, 470} {
		entities.NewPlayerBullet(tw.EM, tw.Registry, x, 180, 0, 480, components.WeaponNormal, 1)
	}
	tw.tick(1, 0.1)

	assert.True(t, mr.Rolling())
	assert.Equal(t, 1, mr.RollCount())
	assert.Contains(t, tw.presentation.Triggers(mr.Root()), game.TriggerBarrelRoll)
	assert.Equal(t, HitImmune, mr.TakeDamage(tw.World, 5))

	tw.tick(10, 0.1)
	assert.False(t, mr.Rolling())
}

func TestMirrorRollLerpsToExactEnd(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "mirror", X: 500, Y: 180})
	require.NoError(t, err)
	mr := boss.(*Mirror)
	pos := tw.Position(mr.Root())
	pos.Y = 180

	mr.beginRoll(tw.World)
	require.True(t, mr.Rolling())
	dist := mr.roll.EndY - 180
	assert.Equal(t, 48.0, math.Abs(dist))
	assert.Equal(t, pos.X, mr.roll.EndX, "rolls vertically only")

	// rollDuration 0.4 秒，每步 0.3 秒
	mr.advanceRoll(tw.World, 0.3)
	assert.InDelta(t, 180+0.75*dist, pos.Y, 1e-9)
	assert.True(t, mr.Rolling())

	mr.advanceRoll(tw.World, 0.3)
	assert.Equal(t, mr.roll.EndY, pos.Y, "lands on the end point without overshoot")
	assert.False(t, mr.Rolling())
	assert.False(t, mr.roll.Active)
	assert.Equal(t, pos.Y, mr.targetY)
}

func TestMirrorSwitchesWeaponByDistance(t *testing.T) {
	tw := newTestWorld(t)
	boss, err := tw.SpawnBoss(config.BossConfig{Archetype: "mirror", X: 600, Y: 180})
	require.NoError(t, err)
	mr := boss.(*Mirror)

	tw.tick(1, 0.1)
	assert.Equal(t, components.WeaponNormal, mr.Weapon())

	tw.Position(tw.Player).X = 500
	tw.tick(11, 0.1)
	assert.Equal(t, components.WeaponLaser, mr.Weapon())
}
