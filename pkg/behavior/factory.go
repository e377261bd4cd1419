package behavior

import (
	"log"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/routine"
)

const slotSpawn = "spawn"

// Factory 工厂：免疫的舱门轮流放出小兵，本体始终可受伤。
// 血量低于一半进入第二阶段：放兵间隔减半，瞄准射击换成环形弹。
type Factory struct {
	bossBase
	hatches []ecs.EntityID
	next    int
	phase   int
	minions []ecs.EntityID
}

// NewFactory 创建工厂
func NewFactory(stats *config.ArchetypeStats, placement config.BossConfig) Boss {
	return &Factory{bossBase: newBossBase("factory", stats, placement), phase: 1}
}

// Start 实现 Boss
func (f *Factory) Start(w *World) {
	root := f.spawnRoot(w, f.stats.Radius, false)

	n := max(1, int(f.stats.Param("hatches", 3)))
	span := f.stats.Param("hatchSpan", 120)
	for i := 0; i < n; i++ {
		hy := f.y
		if n > 1 {
			hy = f.y - span/2 + float64(i)*span/float64(n-1)
		}
		f.hatches = append(f.hatches, f.spawnPart(w, root, f.x-f.stats.Radius, hy, f.stats.Param("hatchRadius", 10), 0, true))
	}

	interval := f.stats.Param("spawnInterval", 3)
	minion := f.stats.Param("minionHP", 0)
	w.Start(root, slotSpawn, routine.NewLoop(f.alive, func(c *routine.Context) routine.Wait {
		f.spawnMinion(w, int(minion))
		if f.phase == 2 {
			return routine.Seconds(interval / 2)
		}
		return routine.Seconds(interval)
	}))

	w.Start(root, slotFire, routine.NewLoop(f.alive, func(c *routine.Context) routine.Wait {
		if f.phase == 2 {
			fireRing(w, root, int(f.stats.Param("ring", 8)), 0, f.stats.BulletSpeed)
		} else {
			w.FireAimed(root, f.stats.BulletSpeed)
		}
		return routine.Seconds(f.stats.RateOfFire)
	}))
}

// spawnMinion 从下一个舱门放出一只小兵（不掉落道具）
func (f *Factory) spawnMinion(w *World, hp int) {
	hatch := f.hatches[f.next]
	f.next = (f.next + 1) % len(f.hatches)
	pos := w.Position(hatch)
	if pos == nil {
		return
	}
	id, err := w.SpawnEnemy(config.SpawnConfig{
		Archetype: "fly",
		X:         pos.X,
		Y:         pos.Y,
		HP:        hp,
		Drop:      "none",
	})
	if err != nil {
		log.Printf("[Factory] Failed to spawn minion: %v", err)
		return
	}
	f.minions = append(f.minions, id)
	w.Presentation.PlayAnimationTrigger(hatch, game.TriggerOpen)
}

// Minions 已放出的小兵（含已死亡的）
func (f *Factory) Minions() []ecs.EntityID { return f.minions }

// Phase 当前阶段
func (f *Factory) Phase() int { return f.phase }

// CheckCollision 实现 Boss：本体可受伤，舱门免疫
func (f *Factory) CheckCollision(w *World, bullet ecs.EntityID, damage int) HitResult {
	if f.Defeated() {
		return HitNone
	}
	if touching(w, bullet, f.root) {
		return f.TakeDamage(w, damage)
	}
	for _, id := range f.hatches {
		if touching(w, bullet, id) {
			w.Audio.PlaySoundEffect(game.SoundImmuneHit)
			return HitImmune
		}
	}
	return HitNone
}

// TakeDamage 实现 Boss
func (f *Factory) TakeDamage(w *World, damage int) HitResult {
	result := f.damageRoot(w, damage)
	if result == HitDamage && f.phase == 1 && f.HP()*2 < f.MaxHP() {
		f.phase = 2
		log.Printf("[Factory] Entering phase 2 (hp=%d)", f.HP())
	}
	return result
}
