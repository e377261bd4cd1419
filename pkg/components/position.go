package components

// PositionComponent 存储实体在世界中的位置
//
// 坐标系与屏幕一致：X 向右，Y 向下，逻辑屏幕 640×360。
// Z 为图层深度，仅影响绘制顺序，不参与碰撞。
type PositionComponent struct {
	X float64
	Y float64
	Z float64
}
