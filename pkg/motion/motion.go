// Package motion 实现所有角色共享的运动学模型
//
// 角色以标量速度沿朝向前进，朝向可以直接设置（角度/弧度），
// 也可以由目标点推导。目标点只在设置时推导一次朝向，
// 之后位置变化不会自动重新瞄准，需要由行为协程显式重设。
package motion

import (
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/utils"
)

// SetSpeed 设置标量速度，速度不允许为负
func SetSpeed(m *components.MotionComponent, v float64) {
	utils.Invariant(v >= 0, "negative speed %.3f", v)
	m.Speed = v
}

// SetHeadingRadians 设置朝向（弧度），清除目标点
func SetHeadingRadians(m *components.MotionComponent, theta float64) {
	m.Heading = theta
	m.HasTarget = false
}

// SetHeadingDegrees 设置朝向（角度），清除目标点
func SetHeadingDegrees(m *components.MotionComponent, deg float64) {
	SetHeadingRadians(m, deg*math.Pi/180)
}

// SetTarget 记录目标点，并由当前位置推导朝向
//
// 当前位置与目标重合时保持原朝向。
func SetTarget(pos *components.PositionComponent, m *components.MotionComponent, tx, ty float64) {
	m.TargetX, m.TargetY = tx, ty
	m.HasTarget = true
	if tx == pos.X && ty == pos.Y {
		return
	}
	m.Heading = utils.AngleTo(pos.X, pos.Y, tx, ty)
}

// Integrate 按速度和朝向推进位置
func Integrate(pos *components.PositionComponent, m *components.MotionComponent, dt float64) {
	if m.Speed == 0 {
		return
	}
	pos.X += m.Speed * math.Cos(m.Heading) * dt
	pos.Y += m.Speed * math.Sin(m.Heading) * dt
}

// Arrived 是否已到达目标点：distance(target, position) < eps
// 没有目标点时返回 false
func Arrived(pos *components.PositionComponent, m *components.MotionComponent, eps float64) bool {
	if !m.HasTarget {
		return false
	}
	return utils.Distance(m.TargetX, m.TargetY, pos.X, pos.Y) < eps
}

// HeadingDegrees 以角度返回当前朝向
func HeadingDegrees(m *components.MotionComponent) float64 {
	return m.Heading * 180 / math.Pi
}

// ArrivedOrPassed 到达目标点，或者已经越过目标点（目标在朝向的反方向）
//
// 大 dt 下单步位移可能超过 eps，此时用于判断"已到达"。
func ArrivedOrPassed(pos *components.PositionComponent, m *components.MotionComponent, eps float64) bool {
	if Arrived(pos, m, eps) {
		return true
	}
	if !m.HasTarget {
		return false
	}
	dx, dy := m.TargetX-pos.X, m.TargetY-pos.Y
	return dx*math.Cos(m.Heading)+dy*math.Sin(m.Heading) <= 0
}
