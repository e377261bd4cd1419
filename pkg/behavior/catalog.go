package behavior

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
)

// Behavior 普通敌人原型的状态机
//
// Start 在实体创建后调用一次，负责启动协程（以及创建复合成员）；
// OnCollision 在玩家子弹命中后调用；OnDeath 在死亡结算时、注销之前调用。
type Behavior interface {
	Start(w *World, self ecs.EntityID)
	OnCollision(w *World, self, other ecs.EntityID)
	OnDeath(w *World, self ecs.EntityID)
}

// EnemyFactory 根据原型参数构造行为
type EnemyFactory func(stats *config.ArchetypeStats) Behavior

// BossFactory 根据原型参数和摆放构造 Boss
type BossFactory func(stats *config.ArchetypeStats, placement config.BossConfig) Boss

// EntityShaper 可选接口：行为自定义根实体的构造参数
type EntityShaper interface {
	Shape(spec *entities.EnemySpec)
}

// Catalog 原型名到工厂的映射
type Catalog struct {
	enemies map[string]EnemyFactory
	bosses  map[string]BossFactory
}

// NewCatalog 创建空目录
func NewCatalog() *Catalog {
	return &Catalog{
		enemies: make(map[string]EnemyFactory),
		bosses:  make(map[string]BossFactory),
	}
}

// RegisterEnemy 注册普通敌人原型
func (c *Catalog) RegisterEnemy(name string, f EnemyFactory) {
	c.enemies[name] = f
}

// RegisterBoss 注册 Boss 原型
func (c *Catalog) RegisterBoss(name string, f BossFactory) {
	c.bosses[name] = f
}

// Enemy 查找普通敌人工厂
func (c *Catalog) Enemy(name string) (EnemyFactory, bool) {
	f, ok := c.enemies[name]
	return f, ok
}

// Boss 查找 Boss 工厂
func (c *Catalog) Boss(name string) (BossFactory, bool) {
	f, ok := c.bosses[name]
	return f, ok
}

// Names 所有已注册原型名（排序后）
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.enemies)+len(c.bosses))
	for name := range c.enemies {
		names = append(names, name)
	}
	for name := range c.bosses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog 内置全部原型
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.RegisterEnemy("turret", NewTurret)
	c.RegisterEnemy("cube", NewCube)
	c.RegisterEnemy("wheel", NewWheel)
	c.RegisterEnemy("formation_box", NewFormationBox)
	c.RegisterEnemy("disc", NewDisc)
	c.RegisterEnemy("fly", NewFly)
	c.RegisterEnemy("twitch_plane", NewTwitchPlane)
	c.RegisterEnemy("snake", NewSnake)
	c.RegisterEnemy("fold_wall", NewFoldWall)
	c.RegisterBoss("hydra", NewHydra)
	c.RegisterBoss("mirror", NewMirror)
	c.RegisterBoss("core", NewCore)
	c.RegisterBoss("factory", NewFactory)
	return c
}

// resolveStats 合并原型参数与摆放覆盖项
func (w *World) resolveStats(archetype string, hp int, params map[string]float64) (*config.ArchetypeStats, error) {
	base, ok := w.Stats.Get(archetype)
	if !ok {
		return nil, fmt.Errorf("unknown archetype stats %q", archetype)
	}
	stats := *base
	if hp > 0 {
		stats.HP = hp
	}
	if len(params) > 0 {
		merged := make(map[string]float64, len(base.Params)+len(params))
		for k, v := range base.Params {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		stats.Params = merged
	}
	return &stats, nil
}

// SpawnEnemy 按摆放生成普通敌人并启动其行为
//
// 返回：
//   - ecs.EntityID: 根实体
//   - error: 原型未注册或参数缺失
func (w *World) SpawnEnemy(spawn config.SpawnConfig) (ecs.EntityID, error) {
	factory, ok := w.Catalog.Enemy(spawn.Archetype)
	if !ok {
		return 0, fmt.Errorf("unknown enemy archetype %q", spawn.Archetype)
	}
	stats, err := w.resolveStats(spawn.Archetype, spawn.HP, spawn.Params)
	if err != nil {
		return 0, err
	}
	dropName := stats.Drop
	if spawn.Drop != "" {
		dropName = spawn.Drop
	}
	drop, ok := components.ParseItemKind(dropName)
	if !ok {
		return 0, fmt.Errorf("enemy %q: unknown drop %q", spawn.Archetype, dropName)
	}

	b := factory(stats)
	spec := entities.EnemySpec{
		Archetype: spawn.Archetype,
		X:         spawn.X,
		Y:         spawn.Y,
		HP:        stats.HP,
		Score:     stats.Score,
		Drop:      drop,
		Radius:    stats.Radius,
		Despawn:   true,
	}
	if shaper, ok := b.(EntityShaper); ok {
		shaper.Shape(&spec)
	}

	id := entities.NewEnemy(w.EM, w.Registry, spec)
	w.EM.AddComponent(id, &components.BehaviorComponent{Archetype: spawn.Archetype, Instance: b})
	b.Start(w, id)
	return id, nil
}

// SpawnBoss 生成 Boss 并启动其行为
func (w *World) SpawnBoss(placement config.BossConfig) (Boss, error) {
	factory, ok := w.Catalog.Boss(placement.Archetype)
	if !ok {
		return nil, fmt.Errorf("unknown boss archetype %q", placement.Archetype)
	}
	stats, err := w.resolveStats(placement.Archetype, 0, placement.Params)
	if err != nil {
		return nil, err
	}
	boss := factory(stats, placement)
	boss.Start(w)
	log.Printf("[Catalog] Spawned boss %s (hp=%d)", placement.Archetype, boss.HP())
	return boss, nil
}

// behaviorOf 实体的行为实例
func (w *World) behaviorOf(id ecs.EntityID) Behavior {
	bc, ok := ecs.GetComponent[*components.BehaviorComponent](w.EM, id)
	if !ok {
		return nil
	}
	b, _ := bc.Instance.(Behavior)
	return b
}
