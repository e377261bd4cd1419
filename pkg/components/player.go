package components

// PlayerComponent 玩家状态
type PlayerComponent struct {
	SpeedLevel int // 1-4
	Power      int // 1-4，决定并排子弹数量
	Weapon     WeaponKind
	Lives      int
	Bombs      int

	FireCooldown float64 // 距离下一次可开火的时间（秒）

	// 激光过热：连续开火累计 LaserHeat 秒后进入 LaserCooldown 冷却
	LaserHeat     float64
	LaserCooldown float64

	// Respawning 被击中后的无敌闪烁阶段
	Respawning bool
}
