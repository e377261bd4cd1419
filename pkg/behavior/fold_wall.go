package behavior

import (
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// foldThresholds 折叠阈值（度），交替使用
var foldThresholds = [2]float64{180, 270}

// FoldWall 折叠墙：领头节绕支点按固定角度步进旋转，
// 每累计转过阈值（180° 与 270° 交替）就在当前位置放下一节静止墙体，
// 并反转旋转方向。放下的墙体不可摧毁，随领头节一起消失。
type FoldWall struct {
	enemyBase

	pivotX, pivotY float64
	radius         float64
	angle          float64 // 领头节相对支点的角度（度）
	swept          float64 // 本段已转过的角度
	dir            float64 // +1 顺时针（屏幕坐标），-1 逆时针
	folds          int
	placed         []ecs.EntityID
	stepTimer      routine.Timer
}

// NewFoldWall 创建折叠墙行为
func NewFoldWall(stats *config.ArchetypeStats) Behavior {
	return &FoldWall{enemyBase: enemyBase{stats}, dir: 1}
}

// Placed 已放下的墙体
func (f *FoldWall) Placed() []ecs.EntityID { return f.placed }

// Start 实现 Behavior
func (f *FoldWall) Start(w *World, self ecs.EntityID) {
	pos := w.Position(self)
	f.radius = f.stats.Param("armLength", 48)
	f.pivotX, f.pivotY = pos.X-f.radius, pos.Y
	f.angle = 0

	step := f.stats.Param("step", 15)
	interval := f.stats.Param("interval", 0.1)
	maxFolds := int(f.stats.Param("folds", 4))

	w.Start(self, slotMove, routine.Func(func(c *routine.Context) routine.Wait {
		if !w.Alive(self) {
			return routine.Done()
		}
		f.pivotX -= w.ScrollSpeed * c.Dt

		if f.folds < maxFolds {
			f.stepTimer.Advance(c.Dt, false)
			for f.stepTimer.Reached(interval) {
				f.stepTimer.Elapsed -= interval
				f.rotate(w, self, step)
				if f.folds >= maxFolds {
					break
				}
			}
		}
		pos.X, pos.Y = utils.PointOnCircle(f.pivotX, f.pivotY, f.radius, degrees(f.angle))
		return routine.Tick()
	}))
}

// rotate 转过一步，达到阈值时放下一节墙体并反向
func (f *FoldWall) rotate(w *World, self ecs.EntityID, step float64) {
	f.angle += f.dir * step
	f.swept += step
	threshold := foldThresholds[f.folds%len(foldThresholds)]
	if f.swept < threshold {
		return
	}

	x, y := utils.PointOnCircle(f.pivotX, f.pivotY, f.radius, degrees(f.angle))
	wall := entities.NewEnemy(w.EM, w.Registry, entities.EnemySpec{
		Archetype: "fold_wall",
		X:         x,
		Y:         y,
		Radius:    f.stats.Radius,
		Wall:      true,
		Scroll:    true,
		Despawn:   true,
	})
	entities.AttachMember(w.EM, self, wall, false)
	f.placed = append(f.placed, wall)

	f.folds++
	f.swept = 0
	f.dir = -f.dir
}
