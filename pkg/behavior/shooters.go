package behavior

import (
	"math"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/routine"
)

// 敌人协程槽位
const (
	slotFire  = "fire"
	slotMove  = "move"
	slotChain = "chain"
)

// enemyBase 普通敌人的公共部分
type enemyBase struct {
	stats *config.ArchetypeStats
}

func (enemyBase) OnCollision(w *World, self, other ecs.EntityID) {}
func (enemyBase) OnDeath(w *World, self ecs.EntityID)            {}

// waitOnScreen 挂起直到实体进入屏幕
func waitOnScreen(w *World, self ecs.EntityID) routine.Routine {
	return routine.NewSteps(func(c *routine.Context) routine.Wait {
		return routine.Until(func() bool { return w.OnScreen(self) })
	})
}

// fireRing 以 offset 为起点均匀发射 n 颗子弹
func fireRing(w *World, self ecs.EntityID, n int, offset, speed float64) {
	for i := 0; i < n; i++ {
		w.FireAngle(self, offset+float64(i)*2*math.Pi/float64(n), speed)
	}
}

func degrees(d float64) float64 { return d * math.Pi / 180 }

// Turret 固定炮台：进入屏幕后每隔 RateOfFire 秒朝玩家当前位置开火
type Turret struct {
	enemyBase
}

// NewTurret 创建炮台行为
func NewTurret(stats *config.ArchetypeStats) Behavior {
	return &Turret{enemyBase{stats}}
}

// Shape 炮台是地面单位，随背景卷轴
func (t *Turret) Shape(spec *entities.EnemySpec) { spec.Scroll = true }

// Start 实现 Behavior
func (t *Turret) Start(w *World, self ecs.EntityID) {
	w.Start(self, slotFire, routine.NewChain(
		waitOnScreen(w, self),
		routine.NewSteps(func(c *routine.Context) routine.Wait {
			return routine.Seconds(t.stats.RateOfFire)
		}),
		routine.NewLoop(func() bool { return w.Alive(self) },
			func(c *routine.Context) routine.Wait {
				w.FireAimed(self, t.stats.BulletSpeed)
				w.Presentation.PlayAnimationTrigger(self, game.TriggerFire)
				return routine.Seconds(t.stats.RateOfFire)
			},
		),
	))
}

// Cube 固定角度射击：每轮发射 shots 颗环形弹，相邻两轮错开半个间隔
type Cube struct {
	enemyBase
	volley int
}

// NewCube 创建方块行为
func NewCube(stats *config.ArchetypeStats) Behavior {
	return &Cube{enemyBase: enemyBase{stats}}
}

// Shape 实现 EntityShaper
func (cb *Cube) Shape(spec *entities.EnemySpec) {
	spec.Scroll = true
	spec.Width, spec.Height = spec.Radius*2, spec.Radius*2
}

// Start 实现 Behavior
func (cb *Cube) Start(w *World, self ecs.EntityID) {
	shots := int(cb.stats.Param("shots", 4))
	w.Start(self, slotFire, routine.NewChain(
		waitOnScreen(w, self),
		routine.NewLoop(func() bool { return w.Alive(self) },
			func(c *routine.Context) routine.Wait {
				offset := 0.0
				if cb.volley%2 == 1 {
					offset = math.Pi / float64(shots)
				}
				cb.volley++
				fireRing(w, self, shots, offset, cb.stats.BulletSpeed)
				return routine.Seconds(cb.stats.RateOfFire)
			},
		),
	))
}

// Wheel 旋转螺旋：每次发射 arms 颗子弹，角度每次递增 step 度
type Wheel struct {
	enemyBase
	angle float64
}

// NewWheel 创建轮子行为
func NewWheel(stats *config.ArchetypeStats) Behavior {
	return &Wheel{enemyBase: enemyBase{stats}}
}

// Shape 实现 EntityShaper
func (wh *Wheel) Shape(spec *entities.EnemySpec) { spec.Scroll = true }

// Start 实现 Behavior
func (wh *Wheel) Start(w *World, self ecs.EntityID) {
	arms := int(wh.stats.Param("arms", 2))
	step := degrees(wh.stats.Param("step", 12))
	w.Start(self, slotFire, routine.NewChain(
		waitOnScreen(w, self),
		routine.NewLoop(func() bool { return w.Alive(self) },
			func(c *routine.Context) routine.Wait {
				fireRing(w, self, arms, wh.angle, wh.stats.BulletSpeed)
				wh.angle += step
				return routine.Seconds(wh.stats.RateOfFire)
			},
		),
	))
}

// formationState 编队箱的阶段
type formationState int

const (
	formationEnter formationState = iota
	formationBurst
	formationRest
)

// FormationBox 编队箱：飞入到 stopX 后停下，交替"连发 burst 颗瞄准弹"和"休息 RateOfFire 秒"
type FormationBox struct {
	enemyBase
	state formationState
	shot  int
}

// NewFormationBox 创建编队箱行为
func NewFormationBox(stats *config.ArchetypeStats) Behavior {
	return &FormationBox{enemyBase: enemyBase{stats}}
}

// Shape 实现 EntityShaper
func (fb *FormationBox) Shape(spec *entities.EnemySpec) {
	spec.Width, spec.Height = spec.Radius*2, spec.Radius*2
}

// Start 实现 Behavior
func (fb *FormationBox) Start(w *World, self ecs.EntityID) {
	w.Start(self, slotFire, routine.Func(func(c *routine.Context) routine.Wait {
		return fb.resume(w, self)
	}))
}

func (fb *FormationBox) resume(w *World, self ecs.EntityID) routine.Wait {
	if !w.Alive(self) {
		return routine.Done()
	}
	pos, m := w.Position(self), w.Motion(self)
	burst := int(fb.stats.Param("burst", 3))

	switch fb.state {
	case formationEnter:
		stopX := fb.stats.Param("stopX", 480)
		motion.SetHeadingRadians(m, math.Pi)
		motion.SetSpeed(m, fb.stats.Speed)
		fb.state = formationBurst
		return routine.Until(func() bool { return pos.X <= stopX })
	case formationBurst:
		if fb.shot == 0 {
			motion.SetSpeed(m, 0)
			m.ScrollWithBackground = true
		}
		w.FireAimed(self, fb.stats.BulletSpeed)
		fb.shot++
		if fb.shot >= burst {
			fb.shot = 0
			fb.state = formationRest
		}
		return routine.Seconds(fb.stats.Param("burstGap", 0.15))
	default:
		fb.state = formationBurst
		return routine.Seconds(fb.stats.RateOfFire)
	}
}
