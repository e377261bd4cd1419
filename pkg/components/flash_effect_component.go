package components

// FlashEffectComponent 闪烁效果组件
//
// 受击时短暂闪白。Interval 大于 0 时以该周期反复开关（Core 受击、Boss 部件联动）。
// 纯视觉效果，不影响伤害判定。
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Interval 开关切换周期（秒），0 表示持续常亮
	Interval float64

	// On 当前着色器闪白是否开启
	On bool

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool
}
