package utils

import "math"

// 缓动函数
//
// 输入进度 t 通常在 [0, 1] 内。除 Clamp01 外均不做钳制，
// 调用方传入越界进度时得到的是公式的自然外推值。

// EaseInCubic 三次方缓入：开始慢、结束快
// 背景卷轴"加速"阶段使用
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出：开始快、结束慢
// 背景卷轴"减速"阶段使用
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// Core 低血量脉动的节奏曲线
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值，不钳制 t
// t=0 返回 a，t=1 返回 b，t>1 时会越过 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
