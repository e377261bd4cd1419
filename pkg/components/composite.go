package components

import "github.com/gonewx/stg/pkg/ecs"

// CompositeComponent 组合敌人的父子关系
//
// 父实体持有 Members（按链条顺序），成员持有 Parent。
// 成员的生命周期不会超过父实体：父实体注销时成员一并注销。
type CompositeComponent struct {
	Parent  ecs.EntityID   // 成员使用，父实体为 0
	Members []ecs.EntityID // 父实体使用

	// RedirectToParent 成员受到的伤害转移给父实体
	RedirectToParent bool
	// PropagateToMembers 父实体受伤时成员一起闪烁
	PropagateToMembers bool
}
