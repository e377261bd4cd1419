package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/motion"
)

// MotionSystem 运动积分系统
//
// 每帧推进所有带 MotionComponent 的实体，处理点到点插值运动，
// 并让标记了 ScrollWithBackground 的实体随背景卷轴左移。
// 暂停时整个系统不做任何事。
type MotionSystem struct {
	entityManager *ecs.EntityManager
	paused        func() bool
	scrollSpeed   func() float64
}

// NewMotionSystem 创建运动系统
// 参数：
//   - em: 实体管理器
//   - paused: 全局暂停标志
//   - scrollSpeed: 当前背景卷轴速度（像素/秒）
func NewMotionSystem(em *ecs.EntityManager, paused func() bool, scrollSpeed func() float64) *MotionSystem {
	return &MotionSystem{
		entityManager: em,
		paused:        paused,
		scrollSpeed:   scrollSpeed,
	}
}

// Update 推进一帧
func (s *MotionSystem) Update(dt float64) {
	if s.paused() {
		return
	}
	scroll := s.scrollSpeed()

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.MotionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		m, _ := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)

		motion.Integrate(pos, m, dt)
		if m.ScrollWithBackground && scroll != 0 {
			pos.X -= scroll * dt
			if m.HasTarget {
				// 目标点与实体处在同一卷轴坐标系中
				m.TargetX -= scroll * dt
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.LerpMotionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		l, _ := ecs.GetComponent[*components.LerpMotionComponent](s.entityManager, id)
		if !l.Active {
			continue
		}
		pos.X, pos.Y = motion.AdvanceLerp(l, dt)
	}
}
