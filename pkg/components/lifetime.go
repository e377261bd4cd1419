package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体（爆炸、掉落物）
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}

// OffscreenDespawnComponent 离开屏幕后自动注销
//
// 敌人需要先进入屏幕（WasOnScreen）才会在离开时被移除，
// 子弹和掉落物生成时即在屏幕内。
type OffscreenDespawnComponent struct {
	Margin      float64
	WasOnScreen bool
}
