package components

import "github.com/gonewx/stg/pkg/ecs"

// WeaponKind 子弹所属武器类型，创建时确定
type WeaponKind int

const (
	WeaponEnemyShot WeaponKind = iota
	WeaponNormal
	WeaponBoomerang
	WeaponLaser
)

func (w WeaponKind) String() string {
	switch w {
	case WeaponNormal:
		return "normal"
	case WeaponBoomerang:
		return "boomerang"
	case WeaponLaser:
		return "laser"
	default:
		return "enemy_shot"
	}
}

// ProjectileComponent 子弹数据
type ProjectileComponent struct {
	Damage     int
	Owner      Faction
	Weapon     WeaponKind
	OneHitKill bool

	// Persistent 为 true 时命中后不消失，可以再次命中（回旋镖、激光）
	Persistent bool

	// Counted 该子弹是否已计入命中数，命中率每发子弹最多计一次
	Counted bool

	// RehitCooldowns 持续型子弹对每个目标的再次命中冷却（秒）
	RehitCooldowns map[ecs.EntityID]float64
}
