package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
)

// OffscreenSystem 移除离开屏幕的临时角色
type OffscreenSystem struct {
	entityManager *ecs.EntityManager
	width, height float64
	remove        func(ecs.EntityID)
}

// NewOffscreenSystem 创建离屏清理系统
func NewOffscreenSystem(em *ecs.EntityManager, width, height float64, remove func(ecs.EntityID)) *OffscreenSystem {
	return &OffscreenSystem{
		entityManager: em,
		width:         width,
		height:        height,
		remove:        remove,
	}
}

// OnScreen 判断坐标是否在屏幕内（外扩 margin）
func (s *OffscreenSystem) OnScreen(x, y, margin float64) bool {
	return x >= -margin && x <= s.width+margin && y >= -margin && y <= s.height+margin
}

// Update 先记录进入过屏幕的实体，再移除离开屏幕的实体
func (s *OffscreenSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.OffscreenDespawnComponent](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		off, _ := ecs.GetComponent[*components.OffscreenDespawnComponent](s.entityManager, id)

		if s.OnScreen(pos.X, pos.Y, 0) {
			off.WasOnScreen = true
			continue
		}
		if off.WasOnScreen && !s.OnScreen(pos.X, pos.Y, off.Margin) {
			s.remove(id)
		}
	}
}
