package systems

import (
	"testing"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
)

type pickupRecorder struct {
	kinds []components.ItemKind
}

func (p *pickupRecorder) OnPickup(player, item ecs.EntityID, kind components.ItemKind) {
	p.kinds = append(p.kinds, kind)
}

func TestItemPickup(t *testing.T) {
	em := ecs.NewEntityManager()
	player := addCircle(em, 10, 10, 4)
	rec := &pickupRecorder{}
	system := NewItemSystem(em, func() ecs.EntityID { return player }, rec)

	near := addCircle(em, 14, 10, 4)
	em.AddComponent(near, &components.ItemComponent{Kind: components.ItemBomb})
	far := addCircle(em, 200, 10, 4)
	em.AddComponent(far, &components.ItemComponent{Kind: components.ItemPower})

	system.Update(1.0 / 60)

	if len(rec.kinds) != 1 || rec.kinds[0] != components.ItemBomb {
		t.Errorf("Expected bomb pickup, got %v", rec.kinds)
	}
	if em.IsAlive(near) {
		t.Error("Picked up item should be destroyed")
	}
	if !em.IsAlive(far) {
		t.Error("Distant item should remain")
	}
}
