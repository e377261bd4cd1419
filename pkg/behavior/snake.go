package behavior

import (
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// Snake 多节蛇：蛇头绕锚点在半径为链长的圆上选取目标点，
// 身体各节跟随前一节，始终保持一个直径的间距。
//
// 身体各节免疫，打在身体上的伤害转给蛇头；蛇头受击时全身一起闪。
type Snake struct {
	enemyBase
	segments []ecs.EntityID
	spacing  float64
	anchorX  float64
	anchorY  float64
	angle    float64
}

// NewSnake 创建蛇行为
func NewSnake(stats *config.ArchetypeStats) Behavior {
	return &Snake{enemyBase: enemyBase{stats}}
}

// Segments 身体各节（不含蛇头）
func (s *Snake) Segments() []ecs.EntityID { return s.segments }

// ChainLength 链长 L = 节数 × 直径
func (s *Snake) ChainLength() float64 {
	return float64(len(s.segments)) * s.spacing
}

// Start 实现 Behavior
func (s *Snake) Start(w *World, self ecs.EntityID) {
	head := w.Position(self)
	m := w.Motion(self)
	n := int(s.stats.Param("segments", 6))
	s.spacing = 2 * s.stats.Radius
	s.anchorX, s.anchorY = head.X, head.Y

	comp := &components.CompositeComponent{PropagateToMembers: true}
	w.EM.AddComponent(self, comp)
	for i := 1; i <= n; i++ {
		seg := entities.NewEnemy(w.EM, w.Registry, entities.EnemySpec{
			Archetype: "snake",
			X:         head.X + float64(i)*s.spacing,
			Y:         head.Y,
			Radius:    s.stats.Radius,
			Immune:    true,
		})
		entities.AttachMember(w.EM, self, seg, true)
		s.segments = append(s.segments, seg)
	}

	eps := w.Config.ArrivalEpsilon
	w.Start(self, slotMove, routine.NewLoop(func() bool { return w.Alive(self) },
		func(c *routine.Context) routine.Wait {
			// 每次至少转过 90°，避免分数不变时反复选中同一点
			s.angle = utils.NormalizeAngle(s.angle + math.Pi/2 + w.ScoreRand().Float64()*math.Pi)
			tx, ty := utils.PointOnCircle(s.anchorX, s.anchorY, s.ChainLength(), s.angle)
			motion.SetSpeed(m, s.stats.Speed)
			motion.SetTarget(head, m, tx, ty)
			return routine.Until(func() bool { return motion.ArrivedOrPassed(head, m, eps) })
		},
		func(c *routine.Context) routine.Wait {
			w.FireAimed(self, s.stats.BulletSpeed)
			return routine.Tick()
		},
	))

	// 锚点随背景卷轴，身体每帧跟随
	w.Start(self, slotChain, routine.Func(func(c *routine.Context) routine.Wait {
		if !w.Alive(self) {
			return routine.Done()
		}
		s.anchorX -= w.ScrollSpeed * c.Dt
		FollowChain(w.EM, self, s.segments, s.spacing)
		return routine.Tick()
	}))
}

// FollowChain 让每一节跟随前一节
//
// 一节只有在与前一节的距离超过 spacing 时才移动，移动后恰好相距 spacing，
// 形成首尾相接的跟随链。已移除的节被跳过，后一节改为跟随更前面的节。
func FollowChain(em *ecs.EntityManager, leader ecs.EntityID, segments []ecs.EntityID, spacing float64) {
	prev, ok := ecs.GetComponent[*components.PositionComponent](em, leader)
	if !ok {
		return
	}
	for _, seg := range segments {
		if !em.IsAlive(seg) {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, seg)
		if !ok {
			continue
		}
		d := utils.Distance(prev.X, prev.Y, pos.X, pos.Y)
		if d > spacing {
			k := spacing / d
			pos.X = prev.X + (pos.X-prev.X)*k
			pos.Y = prev.Y + (pos.Y-prev.Y)*k
		}
		prev = pos
	}
}
