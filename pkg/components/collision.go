package components

// ShapeKind 碰撞形状
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// CollisionComponent 定义实体的碰撞形状
// 形状中心 = 实体位置 + (OffsetX, OffsetY)
type CollisionComponent struct {
	Shape   ShapeKind
	Radius  float64 // ShapeCircle 使用
	Width   float64 // ShapeBox 使用
	Height  float64
	OffsetX float64
	OffsetY float64
}
