package components

// BehaviorComponent 绑定实体的原型行为
//
// Instance 保存原型状态机实例（behavior 包中的具体类型），
// 由行为目录在生成时写入，碰撞和死亡回调通过它分发。
type BehaviorComponent struct {
	Archetype string
	Instance  interface{}
}
