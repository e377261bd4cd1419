package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
)

// FlashEffectSystem 受击闪烁系统
// 管理 FlashEffectComponent 的生命周期，并通知表现层开关着色器闪白
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
	presentation  game.Presentation
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager, presentation game.Presentation) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
		presentation:  presentation,
	}
}

// Update 更新所有闪烁效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		if flashComp.Elapsed == 0 && !flashComp.On {
			flashComp.On = true
			s.presentation.SetShaderFlash(entity, true)
		}

		flashComp.Elapsed += dt

		if flashComp.Elapsed >= flashComp.Duration {
			// 闪烁结束，移除组件
			if flashComp.On {
				s.presentation.SetShaderFlash(entity, false)
			}
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
			continue
		}

		if flashComp.Interval > 0 {
			on := int(flashComp.Elapsed/flashComp.Interval)%2 == 0
			if on != flashComp.On {
				flashComp.On = on
				s.presentation.SetShaderFlash(entity, on)
			}
		}
	}
}
