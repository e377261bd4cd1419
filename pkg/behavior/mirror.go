package behavior

import (
	"log"
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/routine"
)

// 镜像机的协程槽位
const (
	slotChaseX = "chase_x"
	slotChaseY = "chase_y"
	slotDodge  = "dodge"
	slotWeapon = "weapon"
)

// Mirror 镜像机：模仿玩家的中 Boss
//
// 四个并发协程：横向保持与玩家的距离、纵向延迟跟随、
// 子弹密集时横滚闪避、按横向距离切换武器。
// 血量按"多条命"计：每条命打空后原地复活并闪烁无敌。
type Mirror struct {
	bossBase
	lives     int
	maxLives  int
	weapon    components.WeaponKind
	rolling   bool
	targetY   float64
	rollCount int

	// roll 横滚的纵向插值，起止点的 X 相同
	roll components.LerpMotionComponent
}

// NewMirror 创建镜像机
func NewMirror(stats *config.ArchetypeStats, placement config.BossConfig) Boss {
	lives := max(1, int(stats.Param("lives", 3)))
	return &Mirror{
		bossBase: newBossBase("mirror", stats, placement),
		lives:    lives,
		maxLives: lives,
		weapon:   components.WeaponNormal,
	}
}

// Start 实现 Boss
func (mr *Mirror) Start(w *World) {
	root := mr.spawnRoot(w, mr.stats.Radius, false)
	mr.targetY = mr.y

	w.Start(root, slotChaseX, routine.Func(func(c *routine.Context) routine.Wait {
		if mr.Defeated() {
			return routine.Done()
		}
		mr.chaseX(w, c.Dt)
		return routine.Tick()
	}))

	// 纵向跟随：每 lag 秒记录一次玩家高度，其间朝记录值移动
	lag := mr.stats.Param("lag", 0.25)
	sampled := lag
	w.Start(root, slotChaseY, routine.Func(func(c *routine.Context) routine.Wait {
		if mr.Defeated() {
			return routine.Done()
		}
		sampled += c.Dt
		if sampled >= lag {
			sampled = 0
			if _, py, ok := w.PlayerPosition(); ok {
				mr.targetY = py
			}
		}
		mr.chaseY(w, c.Dt)
		return routine.Tick()
	}))

	w.Start(root, slotDodge, routine.Func(func(c *routine.Context) routine.Wait {
		if mr.Defeated() {
			return routine.Done()
		}
		if mr.rolling {
			mr.advanceRoll(w, c.Dt)
			return routine.Tick()
		}
		if mr.countThreats(w) >= int(mr.stats.Param("dodgeThreshold", 3)) {
			mr.beginRoll(w)
		}
		return routine.Tick()
	}))

	w.Start(root, slotWeapon, routine.NewLoop(mr.alive, func(c *routine.Context) routine.Wait {
		mr.selectWeapon(w)
		mr.fire(w)
		return routine.Seconds(mr.stats.RateOfFire)
	}))
}

// chaseX 横向保持在玩家右侧 distance 处
func (mr *Mirror) chaseX(w *World, dt float64) {
	pos := w.Position(mr.root)
	px, _, ok := w.PlayerPosition()
	if pos == nil || !ok {
		return
	}
	desired := math.Max(w.Width/2, math.Min(w.Width-24, px+mr.stats.Param("distance", 220)))
	pos.X = approach(pos.X, desired, mr.stats.Speed*dt)
}

// chaseY 纵向朝记录的目标高度移动
func (mr *Mirror) chaseY(w *World, dt float64) {
	pos := w.Position(mr.root)
	if pos == nil || mr.rolling {
		return
	}
	pos.Y = approach(pos.Y, mr.targetY, mr.stats.Speed*0.7*dt)
}

func approach(from, to, step float64) float64 {
	if math.Abs(to-from) <= step {
		return to
	}
	if to > from {
		return from + step
	}
	return from - step
}

// countThreats 前方窗口内的玩家子弹数
func (mr *Mirror) countThreats(w *World) int {
	pos := w.Position(mr.root)
	if pos == nil {
		return 0
	}
	window := mr.stats.Param("dodgeWindow", 96)
	half := mr.stats.Param("dodgeHeight", 24)
	n := 0
	for _, id := range w.Registry.Bullets() {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.EM, id)
		if !ok || proj.Owner != components.FactionPlayer {
			continue
		}
		bp := w.Position(id)
		if bp == nil {
			continue
		}
		if bp.X >= pos.X-window && bp.X < pos.X && math.Abs(bp.Y-pos.Y) <= half {
			n++
		}
	}
	return n
}

// beginRoll 横滚：短暂无敌并纵向闪开，方向以帧计数为种子选择
func (mr *Mirror) beginRoll(w *World) {
	pos := w.Position(mr.root)
	if pos == nil {
		return
	}
	distance := mr.stats.Param("rollDistance", 48)
	if w.FrameRand().Intn(2) == 0 {
		distance = -distance
	}
	if pos.Y+distance < 16 || pos.Y+distance > w.Height-16 {
		distance = -distance
	}

	mr.rolling = true
	mr.rollCount++
	motion.StartLerp(&mr.roll, pos.X, pos.Y, pos.X, pos.Y+distance, 1/mr.stats.Param("rollDuration", 0.4))
	w.Presentation.PlayAnimationTrigger(mr.root, game.TriggerBarrelRoll)
}

func (mr *Mirror) advanceRoll(w *World, dt float64) {
	pos := w.Position(mr.root)
	if pos == nil {
		return
	}
	_, y := motion.AdvanceLerp(&mr.roll, dt)
	pos.Y = y
	if motion.LerpFinished(&mr.roll) {
		// 插值不钳制，结束时落在终点
		pos.Y = mr.roll.EndY
		mr.roll.Active = false
		mr.rolling = false
		mr.targetY = pos.Y
	}
}

// Rolling 是否正在横滚
func (mr *Mirror) Rolling() bool { return mr.rolling }

// RollCount 横滚次数
func (mr *Mirror) RollCount() int { return mr.rollCount }

// selectWeapon 离玩家近时用激光，远时用普通弹
func (mr *Mirror) selectWeapon(w *World) {
	pos := w.Position(mr.root)
	px, _, ok := w.PlayerPosition()
	if pos == nil || !ok {
		return
	}
	weapon := components.WeaponNormal
	if math.Abs(pos.X-px) < mr.stats.Param("laserRange", 160) {
		weapon = components.WeaponLaser
	}
	if weapon != mr.weapon {
		mr.weapon = weapon
		log.Printf("[Mirror] Weapon -> %s", weapon)
	}
}

// Weapon 当前武器
func (mr *Mirror) Weapon() components.WeaponKind { return mr.weapon }

func (mr *Mirror) fire(w *World) {
	switch mr.weapon {
	case components.WeaponLaser:
		for i := -1; i <= 1; i++ {
			w.FireAngle(mr.root, math.Pi+float64(i)*degrees(4), mr.stats.BulletSpeed*1.8)
		}
	default:
		w.FireAimed(mr.root, mr.stats.BulletSpeed)
	}
	w.Presentation.PlayAnimationTrigger(mr.root, game.TriggerFire)
}

// CheckCollision 实现 Boss
func (mr *Mirror) CheckCollision(w *World, bullet ecs.EntityID, damage int) HitResult {
	if mr.Defeated() || !touching(w, bullet, mr.root) {
		return HitNone
	}
	return mr.TakeDamage(w, damage)
}

// TakeDamage 实现 Boss：打空一条命后复活并闪烁无敌
func (mr *Mirror) TakeDamage(w *World, damage int) HitResult {
	if mr.rolling {
		w.Audio.PlaySoundEffect(game.SoundImmuneHit)
		return HitImmune
	}
	result := mr.damageRoot(w, damage)
	if result != HitDamage {
		return result
	}
	h := mr.health(w)
	if h.HP > 0 || mr.lives <= 1 {
		return result
	}

	mr.lives--
	h.HP = h.MaxHP
	log.Printf("[Mirror] Lost a life, %d remaining", mr.lives)
	if pos := w.Position(mr.root); pos != nil {
		entities.NewExplosion(w.EM, w.Registry, pos.X, pos.Y, false, w.Config.ExplosionLifetime)
	}
	w.Presentation.PlayAnimationTrigger(mr.root, game.TriggerDeath)
	w.StartInvincibility(mr.root, w.Config.Player.HitInvincibility)
	return result
}

// Lives 剩余命数
func (mr *Mirror) Lives() int { return mr.lives }

// HP 实现 Boss：剩余命数折算的总血量
func (mr *Mirror) HP() int {
	return (mr.lives-1)*mr.stats.HP + mr.bossBase.HP()
}

// MaxHP 实现 Boss
func (mr *Mirror) MaxHP() int { return mr.maxLives * mr.stats.HP }

// Defeated 实现 Boss
func (mr *Mirror) Defeated() bool {
	return mr.done || (mr.lives <= 1 && mr.bossBase.HP() <= 0)
}

func (mr *Mirror) alive() bool { return !mr.Defeated() }
