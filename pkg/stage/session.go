package stage

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/stg/pkg/behavior"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/systems"
)

// Options 创建关卡会话所需的依赖
//
// 端口为 nil 时使用空实现；Meta、Loader、Store 可以为 nil。
type Options struct {
	Config *config.GameConfig
	Stats  *config.ArchetypeStatsConfig
	Stage  *config.StageConfig
	Ledger *game.ScoreLedger
	Meta   *game.MetaContext

	Presentation game.Presentation
	Audio        game.Audio
	HUD          game.HUD
	Loader       game.StageLoader
	Store        game.HighScoreStore
}

// Session 一个关卡的完整模拟
//
// 每帧的执行顺序固定（Tick）：输入与暂停 → 协程 → 玩家 → 运动积分
// → 触发式碰撞 → Boss 战集中扫描与阶段切换 → 清理。
type Session struct {
	World        *behavior.World
	Orchestrator *Orchestrator
	Controller   *behavior.PlayerController
	Background   *Background

	motion    *systems.MotionSystem
	collision *systems.CollisionSystem
	items     *systems.ItemSystem
	flash     *systems.FlashEffectSystem
	lifetime  *systems.LifetimeSystem
	offscreen *systems.OffscreenSystem

	multiplierText string
}

// NewSession 创建关卡会话并开始关卡
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	w := behavior.NewWorld(cfg, opts.Stats, opts.Ledger, opts.Meta)
	if opts.Presentation != nil {
		w.Presentation = opts.Presentation
	}
	if opts.Audio != nil {
		w.Audio = opts.Audio
	}
	if opts.HUD != nil {
		w.HUD = opts.HUD
	}
	w.Player = entities.NewPlayer(w.EM, w.Registry, &cfg.Player, opts.Meta)

	bg := &Background{}
	s := &Session{
		World:      w,
		Controller: behavior.NewPlayerController(w),
		Background: bg,
	}
	s.motion = systems.NewMotionSystem(w.EM, func() bool { return w.Paused }, func() float64 { return w.ScrollSpeed })
	s.collision = systems.NewCollisionSystem(w.EM, w.Registry, w)
	s.items = systems.NewItemSystem(w.EM, func() ecs.EntityID { return w.Player }, w)
	s.flash = systems.NewFlashEffectSystem(w.EM, w.Presentation)
	s.lifetime = systems.NewLifetimeSystem(w.EM, w.Remove)
	s.offscreen = systems.NewOffscreenSystem(w.EM, w.Width, w.Height, w.Remove)

	s.Orchestrator = NewOrchestrator(w, opts.Stage, bg, opts.Loader, opts.Store)
	s.refreshHUD()
	s.Orchestrator.Start()
	w.ScrollSpeed = bg.Speed
	log.Printf("[Session] Stage %d ready (player=%d)", opts.Stage.Stage, w.Player)
	return s
}

// Tick 推进一帧
func (s *Session) Tick(dt float64, in game.Signals) {
	w := s.World
	s.Orchestrator.HandleInput(in)
	if w.Paused || s.Orchestrator.Phase().Terminal() {
		return
	}

	w.Frame++
	w.Scheduler.Update(dt)
	w.ScrollSpeed = s.Background.Speed
	s.Background.Update(dt, w.Paused)

	s.Controller.Update(dt, in)
	w.Ledger.Tick(dt, w.Paused)
	if text := MultiplierText(w.Ledger); text != s.multiplierText {
		s.multiplierText = text
		w.HUD.UpdateMultiplierDisplay(text)
	}

	s.motion.Update(dt)
	s.collision.Update(dt)
	s.items.Update(dt)
	s.flash.Update(dt)
	s.lifetime.Update(dt)

	s.Orchestrator.Update(dt)

	s.offscreen.Update(dt)
	w.EM.RemoveMarkedEntities()

	if w.Frame%behavior.LogOutputFrameInterval == 0 {
		log.Printf("[Session] frame=%d phase=%s enemies=%d bullets=%d score=%d",
			w.Frame, s.Orchestrator.Phase(), len(w.Registry.Enemies()), len(w.Registry.Bullets()), w.Ledger.Score)
	}
}

// refreshHUD 用当前玩家状态刷新 HUD
func (s *Session) refreshHUD() {
	w := s.World
	w.HUD.UpdateScoreDisplay(w.Ledger.ScoreText())
	if pc := w.PlayerState(); pc != nil {
		w.HUD.UpdateLivesDisplay(pc.Lives)
		w.HUD.UpdateBombsDisplay(pc.Bombs)
		w.HUD.UpdatePowerDisplay(pc.Power)
		w.HUD.UpdateSpeedDisplay(pc.SpeedLevel)
	}
}

// MultiplierText 倍率显示文本，倍率大于 1 时附带剩余秒数（"x3 12s"）
func MultiplierText(l *game.ScoreLedger) string {
	m := l.Multiplier()
	if m == 1 {
		return "x1"
	}
	return fmt.Sprintf("x%d %ds", m, int(math.Ceil(l.MultiplierRemaining())))
}

// Phase 当前阶段
func (s *Session) Phase() Phase { return s.Orchestrator.Phase() }

// Finished 关卡流程已经结束（通关、进入下一关或游戏结束）
func (s *Session) Finished() bool { return s.Orchestrator.Phase().Terminal() }

// Close 关卡被替换时注销全部角色并取消所有协程
func (s *Session) Close() {
	w := s.World
	w.Registry.Clear()
	w.Scheduler.Clear()
	w.EM.RemoveMarkedEntities()
	log.Printf("[Session] Stage %d closed", s.Orchestrator.stage.Stage)
}
