package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (a running stage, the title or the results screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Finisher 是一个可选接口，场景结束（整局结束）时由 SceneManager 查询
//
// 实现此接口的场景在 Finished 返回 true 后不再被更新，
// 由外层决定退出程序或回到标题。
type Finisher interface {
	Finished() bool
}

// Closer 是一个可选接口，场景被替换时由 SceneManager 调用以释放实体和协程
type Closer interface {
	Close()
}
