package components

// HealthComponent 存储实体的生命值信息
// 用于敌人、Boss 部件和玩家
type HealthComponent struct {
	HP    int // 当前生命值
	MaxHP int // 最大生命值

	// Immune 为 true 时忽略所有伤害（包括炸弹）
	// 受击闪烁期间、不可直接攻击的躯干段等场景使用
	Immune bool
}
