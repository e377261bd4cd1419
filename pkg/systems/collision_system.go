package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/registry"
)

// TriggerHandler 接收碰撞系统检测到的接触
//
// 碰撞在检测到的当下由角色自己处理（扣血、移除子弹等），
// 本系统只负责找出接触对。
type TriggerHandler interface {
	// OnBulletHit 玩家子弹接触到敌人（不含 Boss 部件）
	OnBulletHit(bullet, enemy ecs.EntityID)
	// OnPlayerHit 敌方子弹或敌人本体接触到玩家
	OnPlayerHit(player, source ecs.EntityID)
}

// CollisionSystem 触发式碰撞检测
//
// Boss 部件不参与玩家子弹的检测，由 Boss 战循环集中扫描。
type CollisionSystem struct {
	em       *ecs.EntityManager
	registry *registry.Registry
	handler  TriggerHandler
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - reg: 注册表，提供子弹和敌人集合
//   - handler: 接触处理
//
// 返回:
//   - *CollisionSystem: 碰撞系统实例
func NewCollisionSystem(em *ecs.EntityManager, reg *registry.Registry, handler TriggerHandler) *CollisionSystem {
	return &CollisionSystem{
		em:       em,
		registry: reg,
		handler:  handler,
	}
}

// Update 检测本帧的所有接触
//
// 遍历的是注册表快照，处理过程中移除实体不会破坏遍历；
// 每次回调前都重新检查存活，已被移除的实体直接跳过。
func (cs *CollisionSystem) Update(deltaTime float64) {
	enemies := cs.registry.Enemies()
	player := cs.registry.Player()

	for _, bulletID := range cs.registry.Bullets() {
		if !cs.em.IsAlive(bulletID) {
			continue
		}
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](cs.em, bulletID)
		if !ok {
			continue
		}
		cs.tickRehit(proj, deltaTime)

		switch proj.Owner {
		case components.FactionPlayer:
			for _, enemyID := range enemies {
				if !cs.em.IsAlive(bulletID) {
					break
				}
				if !cs.em.IsAlive(enemyID) || cs.isBossPart(enemyID) {
					continue
				}
				if Overlap(cs.em, bulletID, enemyID) {
					cs.handler.OnBulletHit(bulletID, enemyID)
				}
			}
		case components.FactionEnemy:
			if cs.em.IsAlive(player) && Overlap(cs.em, bulletID, player) {
				cs.handler.OnPlayerHit(player, bulletID)
			}
		}
	}

	// 敌人本体撞到玩家
	for _, enemyID := range enemies {
		if !cs.em.IsAlive(player) {
			break
		}
		if !cs.em.IsAlive(enemyID) {
			continue
		}
		if Overlap(cs.em, enemyID, player) {
			cs.handler.OnPlayerHit(player, enemyID)
		}
	}
}

// tickRehit 推进持续型子弹对各目标的再命中冷却
func (cs *CollisionSystem) tickRehit(proj *components.ProjectileComponent, dt float64) {
	for target, remaining := range proj.RehitCooldowns {
		remaining -= dt
		if remaining <= 0 {
			delete(proj.RehitCooldowns, target)
			continue
		}
		proj.RehitCooldowns[target] = remaining
	}
}

func (cs *CollisionSystem) isBossPart(id ecs.EntityID) bool {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](cs.em, id)
	return ok && enemy.BossPart
}
