package entities

import (
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/motion"
)

// NewItem 创建掉落物
// 掉落物缓慢向左漂移，超时或离开屏幕后消失，不进入注册表
//
// 参数:
//   - x, y: 掉落位置（通常是敌人死亡位置）
//   - kind: 掉落物类型
//   - speed: 漂移速度（像素/秒）
//   - lifetime: 存在时间（秒）
func NewItem(em *ecs.EntityManager, x, y float64, kind components.ItemKind, speed, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	m := &components.MotionComponent{}
	motion.SetSpeed(m, speed)
	motion.SetHeadingRadians(m, math.Pi)

	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, m)
	em.AddComponent(id, &components.FactionComponent{Faction: components.FactionNeutral})
	em.AddComponent(id, &components.CollisionComponent{Shape: components.ShapeCircle, Radius: config.ItemRadius})
	em.AddComponent(id, &components.ItemComponent{Kind: kind})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})
	em.AddComponent(id, &components.OffscreenDespawnComponent{Margin: config.BulletOffscreenMargin, WasOnScreen: true})
	return id
}
