package systems

import (
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/utils"
)

// Overlap 判断两个实体的碰撞形状是否相交
//
// 任一实体缺少位置或碰撞组件时返回 false。
// 形状组合：圆-圆、圆-盒、盒-盒（盒为轴对齐，使用 cp.BB）。
func Overlap(em *ecs.EntityManager, a, b ecs.EntityID) bool {
	posA, ok := ecs.GetComponent[*components.PositionComponent](em, a)
	if !ok {
		return false
	}
	colA, ok := ecs.GetComponent[*components.CollisionComponent](em, a)
	if !ok {
		return false
	}
	posB, ok := ecs.GetComponent[*components.PositionComponent](em, b)
	if !ok {
		return false
	}
	colB, ok := ecs.GetComponent[*components.CollisionComponent](em, b)
	if !ok {
		return false
	}
	return ShapesOverlap(posA, colA, posB, colB)
}

// ShapesOverlap 判断两个已定位形状是否相交
func ShapesOverlap(posA *components.PositionComponent, colA *components.CollisionComponent,
	posB *components.PositionComponent, colB *components.CollisionComponent) bool {

	ax, ay := posA.X+colA.OffsetX, posA.Y+colA.OffsetY
	bx, by := posB.X+colB.OffsetX, posB.Y+colB.OffsetY

	switch {
	case colA.Shape == components.ShapeCircle && colB.Shape == components.ShapeCircle:
		return utils.CirclesOverlap(ax, ay, colA.Radius, bx, by, colB.Radius)
	case colA.Shape == components.ShapeCircle:
		return utils.CircleBoxOverlap(ax, ay, colA.Radius, utils.BoxBB(bx, by, colB.Width, colB.Height))
	case colB.Shape == components.ShapeCircle:
		return utils.CircleBoxOverlap(bx, by, colB.Radius, utils.BoxBB(ax, ay, colA.Width, colA.Height))
	default:
		return utils.BoxBB(ax, ay, colA.Width, colA.Height).Intersects(utils.BoxBB(bx, by, colB.Width, colB.Height))
	}
}
