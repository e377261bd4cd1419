package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
)

// PickupHandler 掉落物被玩家接触时调用
type PickupHandler interface {
	OnPickup(player, item ecs.EntityID, kind components.ItemKind)
}

// ItemSystem 掉落物拾取检测
type ItemSystem struct {
	entityManager *ecs.EntityManager
	player        func() ecs.EntityID
	handler       PickupHandler
}

// NewItemSystem 创建拾取系统
func NewItemSystem(em *ecs.EntityManager, player func() ecs.EntityID, handler PickupHandler) *ItemSystem {
	return &ItemSystem{
		entityManager: em,
		player:        player,
		handler:       handler,
	}
}

// Update 检测玩家与掉落物的接触，拾取后销毁掉落物
func (s *ItemSystem) Update(dt float64) {
	player := s.player()
	if !s.entityManager.IsAlive(player) {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ItemComponent](s.entityManager) {
		if !Overlap(s.entityManager, player, id) {
			continue
		}
		item, _ := ecs.GetComponent[*components.ItemComponent](s.entityManager, id)
		s.handler.OnPickup(player, id, item.Kind)
		s.entityManager.DestroyEntity(id)
	}
}
