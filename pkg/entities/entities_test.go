package entities

import (
	"math"
	"testing"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/routine"
)

func newTestRegistry() (*ecs.EntityManager, *registry.Registry) {
	em := ecs.NewEntityManager()
	sched := routine.NewScheduler(em.IsAlive, nil)
	return em, registry.NewRegistry(em, sched)
}

// TestNewAimedEnemyBullet 测试瞄准子弹记录目标点并注册
func TestNewAimedEnemyBullet(t *testing.T) {
	em, reg := newTestRegistry()

	id := NewAimedEnemyBullet(em, reg, 100, 100, 100, 200, 120)

	if !reg.Contains(registry.Bullets, id) {
		t.Fatal("Bullet should be registered")
	}
	m, ok := ecs.GetComponent[*components.MotionComponent](em, id)
	if !ok {
		t.Fatal("Bullet should have MotionComponent")
	}
	if m.Speed != 120 || m.TargetX != 100 || m.TargetY != 200 || !m.HasTarget {
		t.Errorf("Unexpected motion %+v", m)
	}
	if math.Abs(m.Heading-math.Pi/2) > 1e-9 {
		t.Errorf("Expected heading π/2, got %f", m.Heading)
	}
}

// TestNewPlayerBulletPersistence 测试持续属性由武器类型决定
func TestNewPlayerBulletPersistence(t *testing.T) {
	tests := []struct {
		weapon     components.WeaponKind
		persistent bool
	}{
		{components.WeaponNormal, false},
		{components.WeaponBoomerang, true},
		{components.WeaponLaser, true},
	}

	for _, tt := range tests {
		t.Run(tt.weapon.String(), func(t *testing.T) {
			em, reg := newTestRegistry()
			id := NewPlayerBullet(em, reg, 0, 0, 0, 400, tt.weapon, 1)

			proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
			if proj.Persistent != tt.persistent {
				t.Errorf("Persistent = %v, want %v", proj.Persistent, tt.persistent)
			}
			if tt.persistent && proj.RehitCooldowns == nil {
				t.Error("Persistent bullet needs a rehit map")
			}
			if proj.Owner != components.FactionPlayer {
				t.Errorf("Owner = %v, want player", proj.Owner)
			}
		})
	}
}

func TestNewEnemyRegistersAndLinksMembers(t *testing.T) {
	em, reg := newTestRegistry()

	head := NewEnemy(em, reg, EnemySpec{Archetype: "snake", X: 10, Y: 10, HP: 5, Radius: 8})
	seg := NewEnemy(em, reg, EnemySpec{Archetype: "snake", X: 26, Y: 10, Radius: 8, Immune: true})
	AttachMember(em, head, seg, true)

	if reg.Count(registry.Enemies) != 2 {
		t.Fatalf("Expected 2 enemies, got %d", reg.Count(registry.Enemies))
	}
	hc, _ := ecs.GetComponent[*components.CompositeComponent](em, head)
	if len(hc.Members) != 1 || hc.Members[0] != seg {
		t.Errorf("Unexpected members %v", hc.Members)
	}

	reg.UnregisterEnemy(head)
	if em.IsAlive(seg) {
		t.Error("Member should die with the parent")
	}
}

func TestNewEnemyRejectsZeroHP(t *testing.T) {
	em, reg := newTestRegistry()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for hp 0")
		}
	}()
	NewEnemy(em, reg, EnemySpec{Archetype: "turret"})
}

func TestNewPlayerUsesMetaContext(t *testing.T) {
	em, reg := newTestRegistry()
	cfg := config.DefaultGameConfig().Player

	standalone := NewPlayer(em, reg, &cfg, nil)
	pc, _ := ecs.GetComponent[*components.PlayerComponent](em, standalone)
	if pc.Lives != cfg.StartLives || pc.Bombs != cfg.StartBombs {
		t.Errorf("Standalone player should use config start values, got %+v", pc)
	}

	meta := &game.MetaContext{Stage: 2, LastStage: 2, Lives: 1, Bombs: 0, Power: 3, SpeedLevel: 4}
	carried := NewPlayer(em, reg, &cfg, meta)
	pc, _ = ecs.GetComponent[*components.PlayerComponent](em, carried)
	if pc.Lives != 1 || pc.Bombs != 0 || pc.Power != 3 || pc.SpeedLevel != 4 {
		t.Errorf("Player should carry meta progress, got %+v", pc)
	}
	if reg.Player() != carried {
		t.Error("Registry should point at the latest player")
	}
}

func TestNewExplosionScalesLargeLifetime(t *testing.T) {
	em, reg := newTestRegistry()
	id := NewExplosion(em, reg, 0, 0, true, 0.5)

	lt, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lt.MaxLifetime != 0.5*config.ExplosionLargeScale {
		t.Errorf("MaxLifetime = %f", lt.MaxLifetime)
	}
	if !reg.Contains(registry.Explosions, id) {
		t.Error("Explosion should be registered")
	}
}
