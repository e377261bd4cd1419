package entities

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/registry"
)

// NewEnemyBullet 创建沿固定角度飞行的敌方子弹并注册到子弹集合
//
// 参数:
//   - em: 实体管理器
//   - reg: 注册表
//   - x, y: 发射位置
//   - heading: 飞行方向（弧度）
//   - speed: 速度（像素/秒）
//
// 返回:
//   - ecs.EntityID: 子弹实体ID
func NewEnemyBullet(em *ecs.EntityManager, reg *registry.Registry, x, y, heading, speed float64) ecs.EntityID {
	id, m := newEnemyBullet(em, x, y, speed)
	motion.SetHeadingRadians(m, heading)
	reg.RegisterBullet(id)
	return id
}

// NewAimedEnemyBullet 创建朝目标点发射的敌方子弹
//
// 朝向只在创建时由目标点推导一次，之后直线飞行。
func NewAimedEnemyBullet(em *ecs.EntityManager, reg *registry.Registry, x, y, tx, ty, speed float64) ecs.EntityID {
	id, m := newEnemyBullet(em, x, y, speed)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	motion.SetTarget(pos, m, tx, ty)
	reg.RegisterBullet(id)
	return id
}

func newEnemyBullet(em *ecs.EntityManager, x, y, speed float64) (ecs.EntityID, *components.MotionComponent) {
	id := em.CreateEntity()
	m := &components.MotionComponent{}
	motion.SetSpeed(m, speed)

	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, m)
	em.AddComponent(id, &components.FactionComponent{Faction: components.FactionEnemy})
	em.AddComponent(id, &components.CollisionComponent{
		Shape:  components.ShapeCircle,
		Radius: config.EnemyBulletRadius,
	})
	em.AddComponent(id, &components.ProjectileComponent{
		Damage: 1,
		Owner:  components.FactionEnemy,
		Weapon: components.WeaponEnemyShot,
	})
	em.AddComponent(id, &components.OffscreenDespawnComponent{Margin: config.BulletOffscreenMargin})
	return id, m
}

// NewPlayerBullet 创建玩家子弹并注册到子弹集合
//
// 回旋镖和激光是持续型子弹：命中后不消失，对同一目标按间隔重复命中。
// 持续属性在创建时由武器类型决定。
//
// 参数:
//   - x, y: 发射位置
//   - heading: 飞行方向（弧度）
//   - speed: 速度（像素/秒）
//   - weapon: 武器类型
//   - damage: 单次伤害
func NewPlayerBullet(em *ecs.EntityManager, reg *registry.Registry, x, y, heading, speed float64,
	weapon components.WeaponKind, damage int) ecs.EntityID {

	id := em.CreateEntity()
	m := &components.MotionComponent{}
	motion.SetSpeed(m, speed)
	motion.SetHeadingRadians(m, heading)

	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, m)
	em.AddComponent(id, &components.FactionComponent{Faction: components.FactionPlayer})

	var shape *components.CollisionComponent
	switch weapon {
	case components.WeaponLaser:
		shape = &components.CollisionComponent{Shape: components.ShapeBox, Width: config.LaserWidth, Height: config.LaserHeight}
	case components.WeaponBoomerang:
		shape = &components.CollisionComponent{Shape: components.ShapeCircle, Radius: config.BoomerangRadius}
	default:
		shape = &components.CollisionComponent{Shape: components.ShapeBox, Width: config.PlayerBulletWidth, Height: config.PlayerBulletHeight}
	}
	em.AddComponent(id, shape)

	persistent := weapon == components.WeaponBoomerang || weapon == components.WeaponLaser
	proj := &components.ProjectileComponent{
		Damage:     damage,
		Owner:      components.FactionPlayer,
		Weapon:     weapon,
		Persistent: persistent,
	}
	if persistent {
		proj.RehitCooldowns = make(map[ecs.EntityID]float64)
	}
	em.AddComponent(id, proj)

	// 回旋镖由自身协程负责回收
	if weapon != components.WeaponBoomerang {
		em.AddComponent(id, &components.OffscreenDespawnComponent{Margin: config.BulletOffscreenMargin})
	}

	reg.RegisterBullet(id)
	return id
}
