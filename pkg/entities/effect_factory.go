package entities

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/registry"
)

// NewExplosion 创建爆炸效果并注册到爆炸集合
// 爆炸在 lifetime 秒后由 LifetimeSystem 注销
//
// 参数:
//   - x, y: 爆炸位置
//   - large: 大型爆炸（Boss、复合敌人）
//   - lifetime: 持续时间（秒）
func NewExplosion(em *ecs.EntityManager, reg *registry.Registry, x, y float64, large bool, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.ExplosionComponent{Large: large})
	if large {
		lifetime *= config.ExplosionLargeScale
	}
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})
	reg.RegisterExplosion(id)
	return id
}
