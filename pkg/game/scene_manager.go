package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定关卡的场景，避免 game 包依赖关卡实现
type SceneFactory func(stage int) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
// SceneManager 同时实现 StageLoader，关卡结束时由编排器调用切换到下一关。
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory

	// pending 在当前帧结束后才切换，避免在场景 Update 内部替换自己
	pending      Scene
	currentStage int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadStage to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene immediately.
// 被替换的场景实现了 Closer 时先关闭它。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if c, ok := sm.currentScene.(Closer); ok && sm.currentScene != scene {
		c.Close()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentStage 最近一次加载的关卡
func (sm *SceneManager) CurrentStage() int {
	return sm.currentStage
}

// LoadStage 加载指定关卡的场景
// 切换在下一次 Update 开始时生效
func (sm *SceneManager) LoadStage(stage int) {
	log.Printf("[SceneManager] Loading stage %d", stage)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}

	newScene := sm.sceneFactory(stage)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene for stage %d", stage)
		return
	}
	sm.currentStage = stage
	if sm.currentScene == nil {
		sm.SwitchTo(newScene)
		return
	}
	sm.pending = newScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.pending != nil {
		sm.SwitchTo(sm.pending)
		sm.pending = nil
		log.Printf("[SceneManager] Switched to stage %d", sm.currentStage)
	}
	if sm.currentScene == nil {
		return
	}
	if f, ok := sm.currentScene.(Finisher); ok && f.Finished() {
		return
	}
	sm.currentScene.Update(deltaTime)
}

// Finished 当前场景是否已经结束
func (sm *SceneManager) Finished() bool {
	if f, ok := sm.currentScene.(Finisher); ok {
		return f.Finished()
	}
	return false
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
