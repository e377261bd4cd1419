package behavior

import (
	"log"
	"math"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/routine"
)

// Disc 飞碟：沿固定角度飞到 turnX，转向玩家当时的位置，
// 到达（或越过）后环形开火，再沿随机方向离开。
//
// 离开方向以分数个位数为种子选择。
type Disc struct {
	enemyBase
}

// NewDisc 创建飞碟行为
func NewDisc(stats *config.ArchetypeStats) Behavior {
	return &Disc{enemyBase{stats}}
}

// Start 实现 Behavior
func (d *Disc) Start(w *World, self ecs.EntityID) {
	pos, m := w.Position(self), w.Motion(self)
	eps := w.Config.ArrivalEpsilon

	w.Start(self, slotMove, routine.NewSteps(
		func(c *routine.Context) routine.Wait {
			motion.SetHeadingDegrees(m, d.stats.Param("angle", 180))
			motion.SetSpeed(m, d.stats.Speed)
			turnX := d.stats.Param("turnX", 420)
			return routine.Until(func() bool { return pos.X <= turnX })
		},
		func(c *routine.Context) routine.Wait {
			if px, py, ok := w.PlayerPosition(); ok {
				motion.SetTarget(pos, m, px, py)
			}
			return routine.Until(func() bool { return !m.HasTarget || motion.ArrivedOrPassed(pos, m, eps) })
		},
		func(c *routine.Context) routine.Wait {
			fireRing(w, self, int(d.stats.Param("shots", 8)), 0, d.stats.BulletSpeed)
			exits := []float64{135, 225}
			motion.SetHeadingDegrees(m, exits[w.ScoreRand().Intn(len(exits))])
			log.Printf("[Disc] %d leaving at %.0f°", self, motion.HeadingDegrees(m))
			return routine.Done()
		},
	))
}

// Fly 苍蝇：反复飞到玩家前方的站位点，停下开火，cycles 次后向左离开
//
// 站位点的纵向偏移以分数个位数为种子选择。
type Fly struct {
	enemyBase
	cycles int
}

// NewFly 创建苍蝇行为
func NewFly(stats *config.ArchetypeStats) Behavior {
	return &Fly{enemyBase: enemyBase{stats}}
}

// Start 实现 Behavior
func (f *Fly) Start(w *World, self ecs.EntityID) {
	pos, m := w.Position(self), w.Motion(self)
	eps := w.Config.ArrivalEpsilon
	maxCycles := int(f.stats.Param("cycles", 3))
	standoff := f.stats.Param("standoff", 160)
	offsets := []float64{-40, 0, 40}

	seek := routine.NewLoop(func() bool { return w.Alive(self) && f.cycles < maxCycles },
		func(c *routine.Context) routine.Wait {
			px, py, ok := w.PlayerPosition()
			if !ok {
				px, py = w.Width/4, w.Height/2
			}
			tx := math.Min(px+standoff, w.Width-16)
			ty := py + offsets[w.ScoreRand().Intn(len(offsets))]
			ty = math.Max(16, math.Min(w.Height-16, ty))
			motion.SetSpeed(m, f.stats.Speed)
			motion.SetTarget(pos, m, tx, ty)
			return routine.Until(func() bool { return motion.ArrivedOrPassed(pos, m, eps) })
		},
		func(c *routine.Context) routine.Wait {
			motion.SetSpeed(m, 0)
			w.FireAimed(self, f.stats.BulletSpeed)
			f.cycles++
			return routine.Seconds(f.stats.RateOfFire)
		},
	)
	leave := routine.NewSteps(func(c *routine.Context) routine.Wait {
		motion.SetHeadingRadians(m, math.Pi)
		motion.SetSpeed(m, f.stats.Speed*1.5)
		return routine.Done()
	})
	w.Start(self, slotMove, routine.NewChain(seek, leave))
}

// TwitchPlane 抽搐飞机：飞入到 twitchX 后，每隔 twitch 秒随机改变航向，
// 每两次改向开一次火。航向以帧计数为种子选择。
type TwitchPlane struct {
	enemyBase
	twitches int
}

// NewTwitchPlane 创建抽搐飞机行为
func NewTwitchPlane(stats *config.ArchetypeStats) Behavior {
	return &TwitchPlane{enemyBase: enemyBase{stats}}
}

// Start 实现 Behavior
func (tp *TwitchPlane) Start(w *World, self ecs.EntityID) {
	pos, m := w.Position(self), w.Motion(self)
	headings := []float64{150, 180, 210}

	enter := routine.NewSteps(func(c *routine.Context) routine.Wait {
		motion.SetHeadingRadians(m, math.Pi)
		motion.SetSpeed(m, tp.stats.Speed)
		twitchX := tp.stats.Param("twitchX", 540)
		return routine.Until(func() bool { return pos.X <= twitchX })
	})
	twitch := routine.NewLoop(func() bool { return w.Alive(self) },
		func(c *routine.Context) routine.Wait {
			motion.SetHeadingDegrees(m, headings[w.FrameRand().Intn(len(headings))])
			tp.twitches++
			if tp.twitches%2 == 0 {
				w.FireAimed(self, tp.stats.BulletSpeed)
			}
			return routine.Seconds(tp.stats.Param("twitch", 0.4))
		},
	)
	w.Start(self, slotMove, routine.NewChain(enter, twitch))
}
