package registry

import (
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/utils"
)

// FindNearest 查找离 (x, y) 最近的指定阵营角色
//
// 距离相同时取扫描中先遇到的一个（严格小于比较，不做稳定排序）。
// 敌人阵营跳过墙体和已进入死亡流程的敌人。
//
// 返回：
//   - ecs.EntityID: 找到的实体
//   - bool: 是否找到
func (r *Registry) FindNearest(x, y float64, faction components.Faction, filter VerticalFilter) (ecs.EntityID, bool) {
	var candidates []ecs.EntityID
	switch faction {
	case components.FactionPlayer:
		if r.em.IsAlive(r.player) {
			candidates = []ecs.EntityID{r.player}
		}
	case components.FactionEnemy:
		candidates = r.sets[Enemies].ids
	default:
		return 0, false
	}

	best := ecs.EntityID(0)
	bestDist := math.Inf(1)
	for _, id := range candidates {
		if !r.em.IsAlive(id) {
			continue
		}
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](r.em, id); ok && (enemy.Wall || enemy.Dying) {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](r.em, id)
		if !ok {
			continue
		}
		switch filter {
		case Above:
			if pos.Y >= y {
				continue
			}
		case Below:
			if pos.Y <= y {
				continue
			}
		}
		d := utils.Distance(x, y, pos.X, pos.Y)
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, best != 0
}
