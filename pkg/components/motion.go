package components

// MotionComponent 运动学参数
//
// 每帧位置增量 = Speed * (cos Heading, sin Heading) * dt。
// 目标点只在设置时用于推导朝向，之后位置变化不会自动重新瞄准。
type MotionComponent struct {
	Speed   float64 // 标量速度（像素/秒），永不为负
	Heading float64 // 朝向（弧度）

	TargetX   float64 // 最近一次设置的目标点
	TargetY   float64
	HasTarget bool

	// ScrollWithBackground 为 true 时随背景卷轴一起左移
	ScrollWithBackground bool
}

// LerpMotionComponent 点到点插值运动
//
// Progress 每帧增加 Speed*dt，位置 = Lerp(Start, End, Progress)。
// Progress 不做钳制，dt 过大时会越过终点。
type LerpMotionComponent struct {
	StartX, StartY float64
	EndX, EndY     float64
	Speed          float64 // 每秒推进的进度比例
	Progress       float64
	Active         bool
}
