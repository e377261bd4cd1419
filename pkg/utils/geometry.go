package utils

import (
	"math"

	"github.com/jakecoffman/cp"
)

// 碰撞形状与向量运算
//
// 统一使用 chipmunk 的 cp.Vector / cp.BB 作为几何基础类型，
// 组件里仍以 X/Y 浮点字段存储，需要几何计算时再转换。

// Vec 由坐标构造 cp.Vector
func Vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

// Distance 两点间距离
func Distance(ax, ay, bx, by float64) float64 {
	return Vec(ax, ay).Distance(Vec(bx, by))
}

// AngleTo 从 (ax, ay) 指向 (bx, by) 的弧度角
func AngleTo(ax, ay, bx, by float64) float64 {
	return math.Atan2(by-ay, bx-ax)
}

// BoxBB 以 (cx, cy) 为中心、宽高为 w×h 的轴对齐包围盒
func BoxBB(cx, cy, w, h float64) cp.BB {
	return cp.BB{L: cx - w/2, B: cy - h/2, R: cx + w/2, T: cy + h/2}
}

// CirclesOverlap 两个圆是否相交（含相切）
func CirclesOverlap(ax, ay, ar, bx, by, br float64) bool {
	return Vec(ax, ay).DistanceSq(Vec(bx, by)) <= (ar+br)*(ar+br)
}

// CircleBoxOverlap 圆与轴对齐盒是否相交
func CircleBoxOverlap(cx, cy, r float64, box cp.BB) bool {
	nx := math.Max(box.L, math.Min(cx, box.R))
	ny := math.Max(box.B, math.Min(cy, box.T))
	return Vec(cx, cy).DistanceSq(Vec(nx, ny)) <= r*r
}

// RotateAround 将点 (px, py) 绕 (ox, oy) 旋转 angle 弧度
func RotateAround(px, py, ox, oy, angle float64) (float64, float64) {
	v := Vec(px-ox, py-oy).Rotate(cp.ForAngle(angle))
	return ox + v.X, oy + v.Y
}

// PointOnCircle 圆心 (cx, cy)、半径 r、角度 angle 处的点
func PointOnCircle(cx, cy, r, angle float64) (float64, float64) {
	v := cp.ForAngle(angle).Mult(r)
	return cx + v.X, cy + v.Y
}

// NormalizeAngle 将弧度角规范到 [0, 2π)
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
