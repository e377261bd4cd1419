package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 过期的实体交给 remove 回调移除（注册表中的实体必须经由注册表注销）
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	remove        func(ecs.EntityID)
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, remove func(ecs.EntityID)) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		remove:        remove,
	}
}

// Update 更新所有拥有生命周期组件的实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime

		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.remove(id)
		}
	}
}
