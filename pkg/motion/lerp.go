package motion

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/utils"
)

// StartLerp 开始一段点到点插值运动
// 参数：
//   - speed: 每秒推进的进度比例，1 表示一秒走完全程
func StartLerp(l *components.LerpMotionComponent, sx, sy, ex, ey, speed float64) {
	utils.Invariant(speed >= 0, "negative lerp speed %.3f", speed)
	l.StartX, l.StartY = sx, sy
	l.EndX, l.EndY = ex, ey
	l.Speed = speed
	l.Progress = 0
	l.Active = true
}

// AdvanceLerp 推进进度并返回插值后的位置
//
// 进度不钳制：Progress 超过 1 时位置会越过终点。
// 现有调用方的 dt 都足够小，保持这一行为不变。
func AdvanceLerp(l *components.LerpMotionComponent, dt float64) (float64, float64) {
	if l.Active {
		l.Progress += l.Speed * dt
	}
	return utils.Lerp(l.StartX, l.EndX, l.Progress), utils.Lerp(l.StartY, l.EndY, l.Progress)
}

// LerpFinished 进度是否已达到或越过终点
func LerpFinished(l *components.LerpMotionComponent) bool {
	return l.Progress >= 1
}
