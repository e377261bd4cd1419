package entities

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
)

// NewPlayer 创建玩家实体并登记到注册表
//
// 有 MetaContext 时沿用上一关结束时的残机、炸弹、火力与速度档位，
// 否则（单独运行关卡）使用配置中的初始值。
func NewPlayer(em *ecs.EntityManager, reg *registry.Registry, cfg *config.PlayerConfig, meta *game.MetaContext) ecs.EntityID {
	pc := &components.PlayerComponent{
		SpeedLevel: cfg.StartSpeed,
		Power:      1,
		Weapon:     components.WeaponNormal,
		Lives:      cfg.StartLives,
		Bombs:      cfg.StartBombs,
	}
	if meta != nil {
		pc.Lives = meta.Lives
		pc.Bombs = meta.Bombs
		if meta.Power > 0 {
			pc.Power = meta.Power
		}
		if meta.SpeedLevel > 0 {
			pc.SpeedLevel = meta.SpeedLevel
		}
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: cfg.StartX, Y: cfg.StartY})
	em.AddComponent(id, &components.FactionComponent{Faction: components.FactionPlayer})
	em.AddComponent(id, &components.HealthComponent{HP: 1, MaxHP: 1})
	em.AddComponent(id, &components.CollisionComponent{Shape: components.ShapeCircle, Radius: cfg.Radius})
	em.AddComponent(id, pc)

	reg.SetPlayer(id)
	return id
}
