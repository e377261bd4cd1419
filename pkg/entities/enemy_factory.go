package entities

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/utils"
)

// EnemySpec 敌人实体的构造参数
type EnemySpec struct {
	Archetype string
	X, Y      float64
	HP        int
	Score     int
	Drop      components.ItemKind

	// Radius 圆形碰撞半径；Width/Height 大于 0 时改用矩形
	Radius        float64
	Width, Height float64

	// BossPart Boss 部件，玩家子弹只通过 Boss 战扫描结算
	BossPart bool
	// Wall 墙体：不可被索敌，始终免疫
	Wall   bool
	Immune bool

	// Scroll 随背景卷轴移动（地面单位）
	Scroll bool
	// Despawn 离开屏幕后移除
	Despawn bool
}

// NewEnemy 创建敌人实体并注册到敌人集合
//
// 参数:
//   - em: 实体管理器
//   - reg: 注册表
//   - spec: 构造参数
//
// 返回:
//   - ecs.EntityID: 敌人实体ID
func NewEnemy(em *ecs.EntityManager, reg *registry.Registry, spec EnemySpec) ecs.EntityID {
	utils.Invariant(spec.HP > 0 || spec.Wall || spec.Immune, "enemy %q spawned with hp %d", spec.Archetype, spec.HP)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: spec.X, Y: spec.Y})
	em.AddComponent(id, &components.MotionComponent{ScrollWithBackground: spec.Scroll})
	em.AddComponent(id, &components.FactionComponent{Faction: components.FactionEnemy})
	em.AddComponent(id, &components.HealthComponent{
		HP:     spec.HP,
		MaxHP:  spec.HP,
		Immune: spec.Immune || spec.Wall,
	})

	if spec.Width > 0 && spec.Height > 0 {
		em.AddComponent(id, &components.CollisionComponent{Shape: components.ShapeBox, Width: spec.Width, Height: spec.Height})
	} else {
		em.AddComponent(id, &components.CollisionComponent{Shape: components.ShapeCircle, Radius: spec.Radius})
	}

	em.AddComponent(id, &components.EnemyComponent{
		Archetype:  spec.Archetype,
		ScoreValue: spec.Score,
		Drop:       spec.Drop,
		BossPart:   spec.BossPart,
		Wall:       spec.Wall,
	})

	if spec.Despawn {
		em.AddComponent(id, &components.OffscreenDespawnComponent{Margin: config.EnemyOffscreenMargin})
	}

	reg.RegisterEnemy(id)
	return id
}

// AttachMember 将 member 挂到复合敌人 parent 下
//
// 参数:
//   - redirect: 打在成员上的伤害转给父实体
func AttachMember(em *ecs.EntityManager, parent, member ecs.EntityID, redirect bool) {
	pc, ok := ecs.GetComponent[*components.CompositeComponent](em, parent)
	if !ok {
		pc = &components.CompositeComponent{}
		em.AddComponent(parent, pc)
	}
	pc.Members = append(pc.Members, member)

	mc, ok := ecs.GetComponent[*components.CompositeComponent](em, member)
	if !ok {
		mc = &components.CompositeComponent{}
		em.AddComponent(member, mc)
	}
	mc.Parent = parent
	mc.RedirectToParent = redirect
}
