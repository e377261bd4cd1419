package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testHealthComponent struct {
	HP int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	em := NewEntityManager()
	old := em.CreateEntity()
	em.DestroyEntity(old)
	em.RemoveMarkedEntities()

	fresh := em.CreateEntity()
	if fresh == old {
		t.Fatalf("destroyed id %d was reused", old)
	}
	if em.IsAlive(old) {
		t.Error("stale id must not be reported alive")
	}
	if !em.IsAlive(fresh) {
		t.Error("fresh id must be alive")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericHelpersShareStorageWithReflectionAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testHealthComponent{HP: 7})
	if !em.HasComponent(id, reflect.TypeOf(&testHealthComponent{})) {
		t.Fatal("generic AddComponent must be visible to HasComponent")
	}

	hp, ok := GetComponent[*testHealthComponent](em, id)
	if !ok || hp.HP != 7 {
		t.Fatalf("GetComponent = %+v, %v", hp, ok)
	}

	RemoveComponent[*testHealthComponent](em, id)
	if HasComponent[*testHealthComponent](em, id) {
		t.Error("component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 销毁后立即视为死亡，但组件数据保留到清理
	if em.IsAlive(id) {
		t.Error("Entity should be dead right after DestroyEntity")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Components should survive until cleanup")
	}
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("dead entity returned by query: %v", got)
	}

	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyTwiceIsNoop(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.DestroyEntity(id)
	em.DestroyEntity(id)
	if len(em.entitiesToDestroy) != 1 {
		t.Errorf("expected 1 pending destroy, got %d", len(em.entitiesToDestroy))
	}
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", em.EntityCount())
	}
}

func TestGetEntitiesWithKeepsCreationOrder(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%3 == 0 {
			em.AddComponent(id, &testHealthComponent{HP: i})
		}
		if i%3 == 0 {
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testHealthComponent](em)
	if len(got) != len(want) {
		t.Fatalf("got %d entities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	if em.HasComponent(id1, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id3 should be removed")
	}
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount = %d, want 1", em.EntityCount())
	}
}
