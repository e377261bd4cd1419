package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/stage"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneOptions 创建关卡场景所需的依赖
type SceneOptions struct {
	Config *config.GameConfig
	Stats  *config.ArchetypeStatsConfig
	Stage  *config.StageConfig
	// Ledger 与 Meta 在关卡之间共用
	Ledger *game.ScoreLedger
	Meta   *game.MetaContext

	Audio  game.Audio
	Loader game.StageLoader
	Store  game.HighScoreStore

	// Input 每帧读取一次的输入信号
	Input func() game.Signals
}

// GameScene 关卡场景
//
// 持有一个 stage.Session，每帧读取输入并推进模拟；
// 绘制只使用调试图形（圆形、矩形），不加载任何贴图。
type GameScene struct {
	session *stage.Session
	input   func() game.Signals

	hud *HUDOverlay
	fx  *EffectOverlay
}

// NewGameScene 创建关卡场景并开始关卡
func NewGameScene(opts SceneOptions) *GameScene {
	s := &GameScene{
		input: opts.Input,
		hud:   NewHUDOverlay(),
		fx:    NewEffectOverlay(),
	}
	if s.input == nil {
		s.input = func() game.Signals { return game.Signals{} }
	}

	s.session = stage.NewSession(stage.Options{
		Config:       opts.Config,
		Stats:        opts.Stats,
		Stage:        opts.Stage,
		Ledger:       opts.Ledger,
		Meta:         opts.Meta,
		Presentation: s.fx,
		Audio:        opts.Audio,
		HUD:          s.hud,
		Loader:       opts.Loader,
		Store:        opts.Store,
	})
	log.Printf("[GameScene] Stage %d (%s) created", opts.Stage.Stage, opts.Stage.Name)
	return s
}

// Session 场景内的关卡模拟
func (s *GameScene) Session() *stage.Session { return s.session }

// Close 实现 game.Closer，场景被替换时释放关卡内的角色和协程
func (s *GameScene) Close() {
	s.session.Close()
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.session.Tick(deltaTime, s.input())
	s.fx.Update(deltaTime)
}

// Finished 通关或游戏结束后场景不再更新
//
// 进入下一关（StageComplete）时场景由 SceneManager 替换，不算结束。
func (s *GameScene) Finished() bool {
	switch s.session.Phase() {
	case stage.PhaseGameComplete, stage.PhaseGameOver:
		return true
	default:
		return false
	}
}

// Draw 绘制背景、角色和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 32, A: 255})
	s.drawBackground(screen)
	s.drawEntities(screen)
	s.hud.Draw(screen, s.session.Phase().String())
}
