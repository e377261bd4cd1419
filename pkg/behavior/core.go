package behavior

import (
	"log"
	"math"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

const (
	slotShell = "shell"
	slotPulse = "pulse"
)

// coreTierThresholds 血量比例档位：高于 [i] 时为第 i 档
var coreTierThresholds = [...]float64{0.75, 0.5, 0.25}

// corePulseRatio 低于该血量比例时开始脉动
const corePulseRatio = 0.1

// Core 核心：外壳周期性开合，打开时核心可受伤。
// 血量每跨过一个档位切换一次贴图档位，低于 10% 后开始脉动闪烁。
type Core struct {
	bossBase
	shells       []ecs.EntityID
	open         bool
	tier         int
	pulseStarted bool
	cycles       int
}

// NewCore 创建核心
func NewCore(stats *config.ArchetypeStats, placement config.BossConfig) Boss {
	return &Core{bossBase: newBossBase("core", stats, placement)}
}

// Start 实现 Boss
func (co *Core) Start(w *World) {
	root := co.spawnRoot(w, co.stats.Radius, true)

	n := int(co.stats.Param("shells", 4))
	gap := co.stats.Radius + co.stats.Param("shellGap", 10)
	for i := 0; i < n; i++ {
		sx, sy := utils.PointOnCircle(co.x, co.y, gap, float64(i)*2*math.Pi/float64(n))
		co.shells = append(co.shells, co.spawnPart(w, root, sx, sy, co.stats.Param("shellRadius", 12), 0, true))
	}

	openFor := co.stats.Param("openTime", 2)
	closedFor := co.stats.Param("closedTime", 3)
	w.Start(root, slotShell, routine.NewLoop(co.alive,
		func(c *routine.Context) routine.Wait {
			co.setOpen(w, false)
			return routine.Seconds(closedFor)
		},
		func(c *routine.Context) routine.Wait {
			co.setOpen(w, true)
			co.cycles++
			return routine.Seconds(openFor)
		},
	))

	w.Start(root, slotFire, routine.NewLoop(co.alive, func(c *routine.Context) routine.Wait {
		if co.open {
			fireRing(w, root, int(co.stats.Param("ring", 12)), float64(co.cycles)*degrees(15), co.stats.BulletSpeed)
		} else {
			w.FireAimed(root, co.stats.BulletSpeed)
		}
		return routine.Seconds(co.stats.RateOfFire)
	}))
}

// setOpen 打开或关闭外壳，打开时核心失去免疫
func (co *Core) setOpen(w *World, open bool) {
	if co.open == open && co.cycles > 0 {
		return
	}
	co.open = open
	if h := co.health(w); h != nil {
		h.Immune = !open
	}
	trigger := game.TriggerClose
	if open {
		trigger = game.TriggerOpen
	}
	w.Presentation.PlayAnimationTrigger(co.root, trigger)
	for _, id := range co.shells {
		w.Presentation.PlayAnimationTrigger(id, trigger)
	}
}

// Open 外壳是否打开
func (co *Core) Open() bool { return co.open }

// Tier 当前贴图档位（0 为完好）
func (co *Core) Tier() int { return co.tier }

// Pulsing 是否已进入脉动
func (co *Core) Pulsing() bool { return co.pulseStarted }

// CheckCollision 实现 Boss：核心按开合状态结算，外壳总是免疫
func (co *Core) CheckCollision(w *World, bullet ecs.EntityID, damage int) HitResult {
	if co.Defeated() {
		return HitNone
	}
	if touching(w, bullet, co.root) {
		return co.TakeDamage(w, damage)
	}
	for _, id := range co.shells {
		if touching(w, bullet, id) {
			w.Audio.PlaySoundEffect(game.SoundImmuneHit)
			return HitImmune
		}
	}
	return HitNone
}

// TakeDamage 实现 Boss：扣血后按血量比例更新贴图档位和脉动
func (co *Core) TakeDamage(w *World, damage int) HitResult {
	result := co.damageRoot(w, damage)
	if result != HitDamage {
		return result
	}
	ratio := float64(co.HP()) / float64(max(1, co.MaxHP()))

	if tier := coreTier(ratio); tier != co.tier {
		co.tier = tier
		w.Presentation.SetSpriteTier(co.root, tier)
		log.Printf("[Core] Damage tier -> %d (%.0f%%)", tier, ratio*100)
	}
	if ratio < corePulseRatio && !co.pulseStarted && !co.Defeated() {
		co.pulseStarted = true
		co.startPulse(w)
	}
	return result
}

// coreTier 血量比例对应的档位
func coreTier(ratio float64) int {
	for i, threshold := range coreTierThresholds {
		if ratio > threshold {
			return i
		}
	}
	return len(coreTierThresholds)
}

// startPulse 开关闪白直到被击败，血量越低闪得越快
func (co *Core) startPulse(w *World) {
	period := co.stats.Param("pulsePeriod", 0.3)
	on := false
	w.Start(co.root, slotPulse, routine.NewLoop(co.alive, func(c *routine.Context) routine.Wait {
		on = !on
		w.Presentation.SetShaderFlash(co.root, on)
		ratio := float64(co.HP()) / float64(max(1, co.MaxHP()))
		return routine.Seconds(pulseInterval(period, ratio))
	}))
}

// pulseInterval 脉动的半周期
// 血量比例从 corePulseRatio 降到 0 时，沿正弦曲线从 period/2 缩短到 period/4
func pulseInterval(period, ratio float64) float64 {
	t := utils.Clamp01(ratio / corePulseRatio)
	return period / 4 * (1 + utils.EaseInOutSine(t))
}
