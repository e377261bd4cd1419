package components

// ItemKind 掉落物类型
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemPower
	ItemBomb
	ItemMultiplier
	ItemLife
	ItemWeapon
)

func (k ItemKind) String() string {
	switch k {
	case ItemPower:
		return "power"
	case ItemBomb:
		return "bomb"
	case ItemMultiplier:
		return "multiplier"
	case ItemLife:
		return "life"
	case ItemWeapon:
		return "weapon"
	default:
		return "none"
	}
}

// ParseItemKind 配置文件中的掉落物名称
func ParseItemKind(name string) (ItemKind, bool) {
	switch name {
	case "", "none":
		return ItemNone, true
	case "power":
		return ItemPower, true
	case "bomb":
		return ItemBomb, true
	case "multiplier":
		return ItemMultiplier, true
	case "life":
		return ItemLife, true
	case "weapon":
		return ItemWeapon, true
	}
	return ItemNone, false
}

// EnemyComponent 敌人通用数据
type EnemyComponent struct {
	Archetype  string
	ScoreValue int
	Drop       ItemKind

	// BossPart 为 true 时不参与触发式碰撞，由 Boss 战循环集中检测
	BossPart bool

	// Wall 墙体：阻挡玩家子弹，不计分
	Wall bool

	// Dying 已进入死亡流程，防止重复结算
	Dying bool
}

// ItemComponent 可拾取的掉落物
type ItemComponent struct {
	Kind ItemKind
}
