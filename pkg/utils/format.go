package utils

import (
	"fmt"
	"math"
)

// FormatScore 分数显示格式：至少 6 位，不足补零
func FormatScore(score int) string {
	return fmt.Sprintf("%06d", score)
}

// RoundTo 四舍五入到 places 位小数
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// FormatPercent 将比例（0.8）格式化为一位小数的百分比（"80.0%"）
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
