package behavior

import (
	"log"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/systems"
)

// HitResult Boss 碰撞检测的三态结果
type HitResult int

const (
	// HitNone 没有碰到任何部件
	HitNone HitResult = iota
	// HitDamage 碰到可受伤部件并造成伤害
	HitDamage
	// HitImmune 碰到免疫部件
	HitImmune
)

func (r HitResult) String() string {
	switch r {
	case HitDamage:
		return "hit"
	case HitImmune:
		return "immune"
	default:
		return "none"
	}
}

// Boss 中 Boss / Boss 的公共接口
//
// 玩家子弹不经过碰撞系统，由关卡编排的 Boss 战循环每帧扫描，
// 对每颗子弹调用 CheckCollision。
type Boss interface {
	Start(w *World)
	Root() ecs.EntityID
	// Colliders 当前存活的碰撞部件
	Colliders() []ecs.EntityID
	// CheckCollision 检测子弹与部件，命中可受伤部件时结算伤害
	CheckCollision(w *World, bullet ecs.EntityID, damage int) HitResult
	// TakeDamage 直接结算伤害（炸弹），hp 已为 0 时无效
	TakeDamage(w *World, damage int) HitResult
	HP() int
	MaxHP() int
	Defeated() bool
	// PlayDeath 胜利路径：死亡动画、计分、爆炸并移除
	PlayDeath(w *World)
	// Despawn 超时路径：不播放死亡动画直接移除
	Despawn(w *World)
}

// bossBase Boss 的公共部分：根实体、部件列表、血量
//
// 血量存放在根实体的 HealthComponent 上；根实体与部件都以
// BossPart 身份注册到敌人集合，随根实体一起注销。
type bossBase struct {
	name  string
	stats *config.ArchetypeStats
	x, y  float64

	em    *ecs.EntityManager
	root  ecs.EntityID
	parts []ecs.EntityID
	done  bool
}

func newBossBase(name string, stats *config.ArchetypeStats, placement config.BossConfig) bossBase {
	return bossBase{name: name, stats: stats, x: placement.X, y: placement.Y}
}

// spawnRoot 创建根实体
func (b *bossBase) spawnRoot(w *World, radius float64, immune bool) ecs.EntityID {
	b.em = w.EM
	b.root = entities.NewEnemy(w.EM, w.Registry, entities.EnemySpec{
		Archetype: b.name,
		X:         b.x,
		Y:         b.y,
		HP:        b.stats.HP,
		Score:     b.stats.Score,
		Radius:    radius,
		BossPart:  true,
		Immune:    immune,
	})
	b.parts = append(b.parts, b.root)
	return b.root
}

// spawnPart 创建挂在 parent 下的部件
func (b *bossBase) spawnPart(w *World, parent ecs.EntityID, x, y, radius float64, hp int, immune bool) ecs.EntityID {
	id := entities.NewEnemy(w.EM, w.Registry, entities.EnemySpec{
		Archetype: b.name,
		X:         x,
		Y:         y,
		HP:        hp,
		Radius:    radius,
		BossPart:  true,
		Immune:    immune,
	})
	entities.AttachMember(w.EM, parent, id, false)
	b.parts = append(b.parts, id)
	return id
}

func (b *bossBase) Root() ecs.EntityID { return b.root }

// Colliders 存活部件快照
func (b *bossBase) Colliders() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(b.parts))
	for _, id := range b.parts {
		if b.em.IsAlive(id) {
			out = append(out, id)
		}
	}
	return out
}

func (b *bossBase) health(w *World) *components.HealthComponent {
	return w.Health(b.root)
}

// HP 根实体当前血量
func (b *bossBase) HP() int {
	h, ok := ecs.GetComponent[*components.HealthComponent](b.em, b.root)
	if !ok {
		return 0
	}
	return h.HP
}

// MaxHP 根实体最大血量
func (b *bossBase) MaxHP() int {
	h, ok := ecs.GetComponent[*components.HealthComponent](b.em, b.root)
	if !ok {
		return 0
	}
	return h.MaxHP
}

// Defeated 血量归零或已移除
func (b *bossBase) Defeated() bool {
	return b.done || b.HP() <= 0
}

// alive Boss 协程的循环条件
func (b *bossBase) alive() bool {
	return !b.Defeated()
}

// TakeDamage 默认直接对根实体扣血
func (b *bossBase) TakeDamage(w *World, damage int) HitResult {
	return b.damageRoot(w, damage)
}

// damageRoot 对根实体扣血（hp 已为 0 时无效）
func (b *bossBase) damageRoot(w *World, damage int) HitResult {
	h := b.health(w)
	if h == nil || h.HP <= 0 {
		return HitNone
	}
	if h.Immune {
		w.Audio.PlaySoundEffect(game.SoundImmuneHit)
		return HitImmune
	}
	h.HP -= damage
	if h.HP < 0 {
		h.HP = 0
	}
	w.Flash(b.root)
	w.Audio.PlaySoundEffect(game.SoundHit)
	return HitDamage
}

// touching 子弹是否碰到部件
func touching(w *World, bullet, part ecs.EntityID) bool {
	return w.EM.IsAlive(part) && systems.Overlap(w.EM, bullet, part)
}

// PlayDeath 胜利路径：死亡动画、计分、大爆炸、移除
func (b *bossBase) PlayDeath(w *World) {
	if b.done {
		return
	}
	score := b.stats.Score
	w.Ledger.UpdateScore(score)
	w.Ledger.RecordKill()
	w.HUD.UpdateScoreDisplay(w.Ledger.ScoreText())

	if pos := w.Position(b.root); pos != nil {
		entities.NewExplosion(w.EM, w.Registry, pos.X, pos.Y, true, w.Config.ExplosionLifetime)
	}
	w.Presentation.PlayAnimationTrigger(b.root, game.TriggerDeath)
	w.Audio.PlaySoundEffect(game.SoundLargeExplosion)
	log.Printf("[Boss] %s defeated (+%d)", b.name, score)
	b.Despawn(w)
}

// Despawn 移除根实体及所有部件
func (b *bossBase) Despawn(w *World) {
	if b.done {
		return
	}
	b.done = true
	w.Registry.UnregisterEnemy(b.root)
	// 未挂在根实体下的部件
	for _, id := range b.parts {
		w.Registry.UnregisterEnemy(id)
	}
}
