package behavior

import (
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/motion"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

const (
	// shotSpacing 平行子弹的纵向间距
	shotSpacing = 6.0
	// laserMuzzleOffset 激光从机头前方发出
	laserMuzzleOffset = 12.0
	// optionSpread 僚机弹找不到目标时的偏转角（度）
	optionSpread = 15.0
)

// PlayerController 把输入信号转换为玩家的移动、射击和炸弹
type PlayerController struct {
	w *World

	// boomerang 当前在场的回旋镖，同时只允许一个
	boomerang ecs.EntityID
}

// NewPlayerController 创建玩家控制器
func NewPlayerController(w *World) *PlayerController {
	return &PlayerController{w: w}
}

// Update 处理一帧输入，暂停时由调用方跳过
func (p *PlayerController) Update(dt float64, in game.Signals) {
	w := p.w
	pc := w.PlayerState()
	pos := w.Position(w.Player)
	if pc == nil || pos == nil || w.GameOver {
		return
	}
	cfg := &w.Config.Player

	if in.C.Pressed {
		pc.SpeedLevel = pc.SpeedLevel%len(cfg.Speeds) + 1
		w.HUD.UpdateSpeedDisplay(pc.SpeedLevel)
	}
	utils.CheckIndex(pc.SpeedLevel-1, len(cfg.Speeds), "player speed level")

	dx, dy := in.Direction()
	if dx != 0 || dy != 0 {
		n := math.Hypot(dx, dy)
		speed := cfg.Speeds[pc.SpeedLevel-1]
		pos.X += dx / n * speed * dt
		pos.Y += dy / n * speed * dt
		pos.X = math.Max(cfg.Radius, math.Min(w.Width-cfg.Radius, pos.X))
		pos.Y = math.Max(cfg.Radius, math.Min(w.Height-cfg.Radius, pos.Y))
	}

	if pc.FireCooldown > 0 {
		pc.FireCooldown -= dt
	}
	p.updateLaser(pc, dt, in.A.Held)

	if in.A.Held {
		p.fire(pc, pos)
	}
	if in.B.Pressed {
		p.bomb(pc)
	}
}

// updateLaser 激光过热：连续开火 LaserOverheat 秒后冷却 LaserCooldown 秒
func (p *PlayerController) updateLaser(pc *components.PlayerComponent, dt float64, firing bool) {
	if pc.Weapon != components.WeaponLaser {
		return
	}
	cfg := &p.w.Config.Player
	if pc.LaserCooldown > 0 {
		pc.LaserCooldown -= dt
		if pc.LaserCooldown < 0 {
			pc.LaserCooldown = 0
		}
		return
	}
	if !firing {
		pc.LaserHeat = math.Max(0, pc.LaserHeat-dt)
		return
	}
	pc.LaserHeat += dt
	if pc.LaserHeat >= cfg.LaserOverheat {
		pc.LaserHeat = 0
		pc.LaserCooldown = cfg.LaserCooldown
	}
}

// Overheated 激光是否处于冷却中
func (p *PlayerController) Overheated() bool {
	pc := p.w.PlayerState()
	return pc != nil && pc.LaserCooldown > 0
}

func (p *PlayerController) fire(pc *components.PlayerComponent, pos *components.PositionComponent) {
	if pc.FireCooldown > 0 {
		return
	}
	w := p.w
	cfg := &w.Config.Player

	switch pc.Weapon {
	case components.WeaponBoomerang:
		if w.EM.IsAlive(p.boomerang) {
			return
		}
		p.boomerang = entities.NewPlayerBullet(w.EM, w.Registry, pos.X, pos.Y, 0, cfg.BulletSpeed*0.6, components.WeaponBoomerang, 1)
		p.startBoomerang(p.boomerang, pos.X)
		w.Ledger.RecordShot(1)
		pc.FireCooldown = cfg.FireInterval
	case components.WeaponLaser:
		if pc.LaserCooldown > 0 {
			return
		}
		entities.NewPlayerBullet(w.EM, w.Registry, pos.X+laserMuzzleOffset, pos.Y, 0, cfg.BulletSpeed*1.5, components.WeaponLaser, 1)
		w.Ledger.RecordShot(1)
		pc.FireCooldown = cfg.FireInterval / 2
	default:
		n := pc.Power
		top := pos.Y - float64(n-1)*shotSpacing/2
		for i := 0; i < n; i++ {
			entities.NewPlayerBullet(w.EM, w.Registry, pos.X, top+float64(i)*shotSpacing, 0, cfg.BulletSpeed, components.WeaponNormal, 1)
		}
		if pc.Power >= cfg.MaxPower {
			n += p.fireOptions(pos)
		}
		w.Ledger.RecordShot(n)
		pc.FireCooldown = cfg.FireInterval
	}
	w.Presentation.PlayAnimationTrigger(w.Player, game.TriggerFire)
	w.Audio.PlaySoundEffect(game.SoundPlayerShot)
}

// fireOptions 满火力时的两颗僚机弹：分别射向上方和下方最近的敌人，
// 没有目标时以 optionSpread 斜向射出
// 返回：
//   - int: 发射的子弹数
func (p *PlayerController) fireOptions(pos *components.PositionComponent) int {
	w := p.w
	speed := w.Config.Player.BulletSpeed
	for _, opt := range []struct {
		filter registry.VerticalFilter
		spread float64
	}{
		{registry.Above, -optionSpread},
		{registry.Below, optionSpread},
	} {
		heading := degrees(opt.spread)
		if target, ok := w.Registry.FindNearest(pos.X, pos.Y, components.FactionEnemy, opt.filter); ok {
			tp := w.Position(target)
			heading = utils.AngleTo(pos.X, pos.Y, tp.X, tp.Y)
		}
		entities.NewPlayerBullet(w.EM, w.Registry, pos.X, pos.Y, heading, speed, components.WeaponNormal, 1)
	}
	return 2
}

// startBoomerang 回旋镖协程：向前飞出射程后折返追向玩家，回到玩家身边时回收
func (p *PlayerController) startBoomerang(id ecs.EntityID, startX float64) {
	w := p.w
	rangeX := startX + w.Config.Player.BoomerangRange
	eps := w.Config.ArrivalEpsilon * 3

	w.Start(id, slotBoomerang, routine.NewSteps(
		func(c *routine.Context) routine.Wait {
			return routine.Until(func() bool {
				pos := w.Position(id)
				return pos == nil || pos.X >= rangeX || pos.X >= w.Width
			})
		},
		func(c *routine.Context) routine.Wait {
			// 每帧重新瞄准玩家，直到回到玩家身边
			return routine.Until(func() bool {
				pos, m := w.Position(id), w.Motion(id)
				px, py, ok := w.PlayerPosition()
				if pos == nil || m == nil || !ok {
					return true
				}
				motion.SetTarget(pos, m, px, py)
				return motion.Arrived(pos, m, eps)
			})
		},
		func(c *routine.Context) routine.Wait {
			w.Registry.UnregisterBullet(id)
			return routine.Done()
		},
	))
}

// bomb 炸弹：清除非免疫敌人和所有敌方子弹，对 Boss 造成固定伤害
func (p *PlayerController) bomb(pc *components.PlayerComponent) {
	if pc.Bombs <= 0 {
		return
	}
	w := p.w
	pc.Bombs--
	w.Ledger.BombUsed = true
	w.HUD.UpdateBombsDisplay(pc.Bombs)
	w.Audio.PlaySoundEffect(game.SoundBomb)
	w.EM.AddComponent(w.Player, &components.FlashEffectComponent{
		Duration: w.Config.Player.BombFlashDuration,
		Interval: w.Config.Player.FlashInterval,
		IsActive: true,
	})

	for _, id := range w.Registry.Bomb() {
		// hp 已清零，直接结算死亡
		w.Kill(id)
	}
	for _, id := range w.Registry.Bullets() {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.EM, id)
		if ok && proj.Owner == components.FactionEnemy {
			w.Registry.Unregister(registry.Bullets, id)
		}
	}
	if w.ActiveBoss != nil && !w.ActiveBoss.Defeated() {
		w.ActiveBoss.TakeDamage(w, w.Config.Player.BombBossDamage)
	}
}
