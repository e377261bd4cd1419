package game

// ButtonState 单个按键在本帧的状态
type ButtonState struct {
	Pressed bool // 本帧刚按下
	Held    bool // 处于按住状态（包括刚按下的这一帧）
}

// Signals 一帧的抽象输入
//
// 物理设备与键位映射由外部完成，核心只看到这些离散信号。
// A 射击，B 炸弹，C 切换速度，Start 暂停。
type Signals struct {
	Up, Down, Left, Right ButtonState
	A, B, C               ButtonState
	Start                 ButtonState
}

// Press 构造一个本帧按下的按键
func Press() ButtonState { return ButtonState{Pressed: true, Held: true} }

// Hold 构造一个持续按住的按键
func Hold() ButtonState { return ButtonState{Held: true} }

// Direction 由方向键得到的单位方向（8 向，未归一化对角线由调用方处理）
func (s Signals) Direction() (dx, dy float64) {
	if s.Left.Held {
		dx--
	}
	if s.Right.Held {
		dx++
	}
	if s.Up.Held {
		dy--
	}
	if s.Down.Held {
		dy++
	}
	return dx, dy
}
