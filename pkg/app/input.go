package app

import (
	"github.com/gonewx/stg/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 键位表：每个信号可以由多个键触发
var (
	keysUp    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	keysDown  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	keysLeft  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysA     = []ebiten.Key{ebiten.KeyZ, ebiten.KeyJ}
	keysB     = []ebiten.Key{ebiten.KeyX, ebiten.KeyK}
	keysC     = []ebiten.Key{ebiten.KeyC, ebiten.KeyL}
	keysStart = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyP}
)

// ReadSignals 把当前帧的键盘状态映射为抽象输入信号
func ReadSignals() game.Signals {
	return game.Signals{
		Up:    buttonState(keysUp),
		Down:  buttonState(keysDown),
		Left:  buttonState(keysLeft),
		Right: buttonState(keysRight),
		A:     buttonState(keysA),
		B:     buttonState(keysB),
		C:     buttonState(keysC),
		Start: buttonState(keysStart),
	}
}

func buttonState(keys []ebiten.Key) game.ButtonState {
	var s game.ButtonState
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			s.Pressed = true
		}
		if ebiten.IsKeyPressed(k) {
			s.Held = true
		}
	}
	return s
}
