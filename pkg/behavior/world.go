package behavior

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/routine"
)

// LogOutputFrameInterval 逐帧日志的输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 100

// World 行为层共享的依赖集合
//
// 所有角色、Boss 和关卡编排都通过 World 访问实体、注册表、调度器、
// 计分和外部协作者，不存在全局单例。
type World struct {
	EM        *ecs.EntityManager
	Registry  *registry.Registry
	Scheduler *routine.Scheduler
	Ledger    *game.ScoreLedger
	// Meta 跨关卡进度，单独运行关卡时为 nil
	Meta *game.MetaContext

	Presentation game.Presentation
	Audio        game.Audio
	HUD          game.HUD

	Config  *config.GameConfig
	Stats   *config.ArchetypeStatsConfig
	Catalog *Catalog

	// Player 玩家实体，0 表示尚未生成
	Player ecs.EntityID
	// Paused 全局暂停标志，由关卡编排切换
	Paused bool
	// Frame 未暂停的帧计数，用于随机种子
	Frame int
	// ScrollSpeed 当前背景卷轴速度（像素/秒）
	ScrollSpeed float64
	// GameOver 玩家残机耗尽
	GameOver bool
	// ActiveBoss 正在进行的 Boss 战，没有时为 nil
	ActiveBoss Boss

	Width, Height float64
}

// NewWorld 创建 World
//
// 外部协作者默认为空实现，调用方按需替换。
// 参数：
//   - cfg: 玩法参数
//   - stats: 敌人原型参数
//   - ledger: 计分板（跨关卡共用同一个实例）
//   - meta: 跨关卡进度，可为 nil
func NewWorld(cfg *config.GameConfig, stats *config.ArchetypeStatsConfig, ledger *game.ScoreLedger, meta *game.MetaContext) *World {
	w := &World{
		EM:           ecs.NewEntityManager(),
		Ledger:       ledger,
		Meta:         meta,
		Presentation: game.NopPresentation{},
		Audio:        game.NopAudio{},
		HUD:          game.NopHUD{},
		Config:       cfg,
		Stats:        stats,
		Catalog:      DefaultCatalog(),
		Width:        config.ScreenWidth,
		Height:       config.ScreenHeight,
	}
	if w.Ledger == nil {
		w.Ledger = game.NewScoreLedger(0)
	}
	w.Scheduler = routine.NewScheduler(w.EM.IsAlive, func() bool { return w.Paused })
	w.Registry = registry.NewRegistry(w.EM, w.Scheduler)
	return w
}

// Position 实体位置，实体不存在时返回 nil
func (w *World) Position(id ecs.EntityID) *components.PositionComponent {
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.EM, id)
	if !ok {
		return nil
	}
	return pos
}

// Motion 实体运动组件，不存在时返回 nil
func (w *World) Motion(id ecs.EntityID) *components.MotionComponent {
	m, ok := ecs.GetComponent[*components.MotionComponent](w.EM, id)
	if !ok {
		return nil
	}
	return m
}

// Health 实体生命值，不存在时返回 nil
func (w *World) Health(id ecs.EntityID) *components.HealthComponent {
	h, ok := ecs.GetComponent[*components.HealthComponent](w.EM, id)
	if !ok {
		return nil
	}
	return h
}

// Alive 实体存活且 hp>0、未进入死亡流程
//
// 行为协程在每轮循环顶部用它判断是否继续。
func (w *World) Alive(id ecs.EntityID) bool {
	if !w.EM.IsAlive(id) {
		return false
	}
	if h := w.Health(id); h != nil && h.HP <= 0 && !h.Immune {
		return false
	}
	if e, ok := ecs.GetComponent[*components.EnemyComponent](w.EM, id); ok && e.Dying {
		return false
	}
	return true
}

// OnScreen 实体中心是否在屏幕内
func (w *World) OnScreen(id ecs.EntityID) bool {
	pos := w.Position(id)
	if pos == nil {
		return false
	}
	return pos.X >= 0 && pos.X <= w.Width && pos.Y >= 0 && pos.Y <= w.Height
}

// PlayerPosition 玩家当前位置
func (w *World) PlayerPosition() (float64, float64, bool) {
	if !w.EM.IsAlive(w.Player) {
		return 0, 0, false
	}
	pos := w.Position(w.Player)
	if pos == nil {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// PlayerState 玩家组件，玩家不存在时返回 nil
func (w *World) PlayerState() *components.PlayerComponent {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](w.EM, w.Player)
	if !ok {
		return nil
	}
	return pc
}

// LastStage 当前关卡是否为最后一关
//
// 没有 MetaContext 时按配置中的 LastStage 判断。
func (w *World) LastStage(stage int) bool {
	if w.Meta != nil {
		return w.Meta.IsLastStage()
	}
	return stage >= w.Config.LastStage
}

// Start 为实体启动协程，等价于 w.Scheduler.Start
func (w *World) Start(owner ecs.EntityID, slot string, r routine.Routine) routine.Handle {
	return w.Scheduler.Start(owner, slot, r)
}

// Remove 移除实体：登记在注册表中的经由注册表注销，其余（掉落物等）直接销毁
func (w *World) Remove(id ecs.EntityID) {
	if !w.Registry.UnregisterAny(id) {
		w.EM.DestroyEntity(id)
	}
}
