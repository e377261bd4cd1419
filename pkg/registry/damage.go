package registry

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
)

// DamageOutcome 伤害结算结果
type DamageOutcome int

const (
	// DamageNone 目标不存在、已死亡或没有生命值
	DamageNone DamageOutcome = iota
	// DamageImmune 目标免疫
	DamageImmune
	// DamageDealt 扣血但未死亡
	DamageDealt
	// DamageKilled 本次伤害使生命值归零
	DamageKilled
)

func (o DamageOutcome) String() string {
	switch o {
	case DamageImmune:
		return "immune"
	case DamageDealt:
		return "damaged"
	case DamageKilled:
		return "killed"
	default:
		return "none"
	}
}

// ApplyDamage 对目标扣血
//
// 对同一帧内已被移除的目标是无操作，不视为错误。
// 免疫目标先于生命值判断：墙体生命值为 0 但始终返回 DamageImmune 以挡住子弹。
// 其余生命值已为 0 的目标返回 DamageNone，避免重复结算死亡。
func (r *Registry) ApplyDamage(target ecs.EntityID, damage int, oneHitKill bool) DamageOutcome {
	if !r.em.IsAlive(target) {
		return DamageNone
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](r.em, target)
	if !ok {
		return DamageNone
	}
	if health.Immune {
		return DamageImmune
	}
	if health.HP <= 0 {
		return DamageNone
	}
	if oneHitKill {
		health.HP = 0
		return DamageKilled
	}
	health.HP -= damage
	if health.HP <= 0 {
		health.HP = 0
		return DamageKilled
	}
	return DamageDealt
}

// Bomb 将所有非免疫敌人的生命值清零
//
// 免疫的敌人保持不变，Boss 部件由 Boss 自己的 TakeDamage 结算。返回被清零的敌人（按集合顺序），
// 由调用方逐个结算死亡。
func (r *Registry) Bomb() []ecs.EntityID {
	var killed []ecs.EntityID
	for _, id := range r.Enemies() {
		if !r.em.IsAlive(id) {
			continue
		}
		health, ok := ecs.GetComponent[*components.HealthComponent](r.em, id)
		if !ok || health.Immune || health.HP <= 0 {
			continue
		}
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](r.em, id); ok && enemy.BossPart {
			continue
		}
		health.HP = 0
		killed = append(killed, id)
	}
	return killed
}
