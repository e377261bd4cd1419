// Package app 提供游戏应用的核心包装器
//
// 负责加载配置、创建持久化与音频、按关卡创建场景，并实现 ebiten.Game。
// main.go 只解析命令行参数后调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 窗口尺寸（逻辑屏幕放大两倍）
const (
	WindowWidth  = config.ScreenWidth * 2
	WindowHeight = config.ScreenHeight * 2
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Stage 起始关卡（1 起），0 表示第 1 关
	Stage int
	// DataDir 非空时关卡配置从该目录的 data/ 读取（见 embedded.InitFromDir）
	DataDir string
	// Watch 监听 DataDir 下的关卡配置，修改后重新开始当前关卡
	Watch bool
	// Mute 启动时静音
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	audio        *game.AudioManager
	watcher      *config.Watcher

	// stageOverrides 热重载得到的关卡配置，优先于嵌入资源
	stageOverrides map[int]*config.StageConfig

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 或 embedded.InitFromDir() 初始化资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏参数加载失败: %w", err)
	}
	stats, err := config.LoadArchetypeStats(config.ArchetypeStatsPath)
	if err != nil {
		return nil, fmt.Errorf("敌人参数加载失败: %w", err)
	}

	// gdata 打开失败时进入降级模式：设置和排行榜只保存在内存中
	gdataManager, err := gdata.Open(gdata.Config{AppName: "stg"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, running without persistence: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)
	if cfg.Mute && !settings.Settings().Muted {
		settings.ToggleMute()
	}
	store := game.NewHighScoreManager(gdataManager)
	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings)

	startStage := cfg.Stage
	if startStage <= 0 {
		startStage = 1
	}
	if startStage > gameCfg.LastStage {
		return nil, fmt.Errorf("stage %d out of range (last stage %d)", startStage, gameCfg.LastStage)
	}

	meta := game.NewMetaContext(gameCfg.LastStage, gameCfg.Player.StartLives, gameCfg.Player.StartBombs)
	meta.Stage = startStage
	meta.SpeedLevel = gameCfg.Player.StartSpeed
	ledger := game.NewScoreLedger(0)

	a := &App{
		sceneManager:   game.NewSceneManager(),
		settings:       settings,
		audio:          audioManager,
		stageOverrides: make(map[int]*config.StageConfig),
		verbose:        cfg.Verbose,
	}

	a.sceneManager.SetSceneFactory(func(stage int) game.Scene {
		stageCfg, err := a.stageConfig(stage)
		if err != nil {
			log.Printf("[App] %v", err)
			return nil
		}
		scene := scenes.NewGameScene(scenes.SceneOptions{
			Config: gameCfg,
			Stats:  stats,
			Stage:  stageCfg,
			Ledger: ledger,
			Meta:   meta,
			Audio:  audioManager,
			Loader: a.sceneManager,
			Store:  store,
			Input:  ReadSignals,
		})
		scene.Session().Orchestrator.Initials = settings.Settings().Initials
		return scene
	})

	if cfg.Watch {
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("--watch requires --data")
		}
		w, err := config.NewWatcher(filepath.Join(cfg.DataDir, config.DefaultStageDirPath))
		if err != nil {
			return nil, fmt.Errorf("配置监听失败: %w", err)
		}
		a.watcher = w
	}

	log.Printf("[App] Starting stage %d", startStage)
	a.sceneManager.LoadStage(startStage)
	if a.sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("failed to start stage %d", startStage)
	}
	return a, nil
}

// stageConfig 关卡配置，热重载的版本优先
func (a *App) stageConfig(stage int) (*config.StageConfig, error) {
	if cfg, ok := a.stageOverrides[stage]; ok {
		return cfg, nil
	}
	cfg, err := config.LoadStageConfig(config.StagePath(stage))
	if err != nil {
		return nil, fmt.Errorf("关卡配置加载失败: %w", err)
	}
	return cfg, nil
}

// pollWatcher 处理一个变化的关卡文件
// 变化的是当前关卡时，重新开始当前关卡
func (a *App) pollWatcher() {
	if a.watcher == nil {
		return
	}
	path, ok := a.watcher.Poll()
	if !ok {
		return
	}
	cfg, err := config.LoadStageConfigFile(path)
	if err != nil {
		log.Printf("[App] Reload of %s rejected: %v", path, err)
		return
	}
	a.stageOverrides[cfg.Stage] = cfg
	log.Printf("[App] Reloaded stage %d from %s", cfg.Stage, path)
	if cfg.Stage == a.sceneManager.CurrentStage() {
		a.sceneManager.LoadStage(cfg.Stage)
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	// M 切换静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if a.settings.ToggleMute() {
			a.audio.StopMusic()
		}
	}

	a.pollWatcher()

	a.sceneManager.Update(1.0 / config.TickRate)

	// 整局结束后按 Esc 退出
	if a.sceneManager.Finished() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Close 保存设置并停止配置监听
func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Watcher close: %v", err)
		}
	}
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}
