package behavior

import (
	"fmt"
	"log"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/routine"
)

// 玩家协程槽位
const (
	slotInvincible = "invincible"
	slotBoomerang  = "boomerang"
)

// DamageEnemy 对敌人造成伤害
//
// 复合成员设置了 RedirectToParent 时伤害转给父实体。
// 对已移除或已进入死亡流程的目标是无操作。
// 返回：
//   - registry.DamageOutcome: 结算结果，DamageKilled 时死亡已结算完毕
func (w *World) DamageEnemy(target ecs.EntityID, damage int, oneHitKill bool) registry.DamageOutcome {
	if !w.EM.IsAlive(target) {
		return registry.DamageNone
	}
	if comp, ok := ecs.GetComponent[*components.CompositeComponent](w.EM, target); ok && comp.RedirectToParent && comp.Parent != 0 {
		if !w.EM.IsAlive(comp.Parent) {
			return registry.DamageNone
		}
		target = comp.Parent
	}
	if enemy, ok := ecs.GetComponent[*components.EnemyComponent](w.EM, target); ok && enemy.Dying {
		return registry.DamageNone
	}

	outcome := w.Registry.ApplyDamage(target, damage, oneHitKill)
	switch outcome {
	case registry.DamageDealt:
		w.Flash(target)
		w.Audio.PlaySoundEffect(game.SoundHit)
	case registry.DamageImmune:
		w.Audio.PlaySoundEffect(game.SoundImmuneHit)
	case registry.DamageKilled:
		w.Kill(target)
	}
	return outcome
}

// Flash 触发受击闪白；复合敌人的 PropagateToMembers 让成员一起闪
func (w *World) Flash(id ecs.EntityID) {
	w.addFlash(id)
	if comp, ok := ecs.GetComponent[*components.CompositeComponent](w.EM, id); ok && comp.PropagateToMembers {
		for _, member := range comp.Members {
			if w.EM.IsAlive(member) {
				w.addFlash(member)
			}
		}
	}
}

func (w *World) addFlash(id ecs.EntityID) {
	w.EM.AddComponent(id, &components.FlashEffectComponent{
		Duration: w.Config.HitFlashDuration,
		IsActive: true,
	})
}

// Kill 结算敌人死亡
//
// 顺序：标记死亡 → 计分 → 掉落 → 爆炸（恰好一个）→ 行为回调 → 从注册表注销。
// 重复调用是无操作。
func (w *World) Kill(id ecs.EntityID) {
	if !w.EM.IsAlive(id) {
		return
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](w.EM, id)
	if !ok || enemy.Dying {
		return
	}
	enemy.Dying = true

	w.Ledger.UpdateScore(enemy.ScoreValue)
	w.Ledger.RecordKill()
	w.HUD.UpdateScoreDisplay(w.Ledger.ScoreText())

	large := false
	if comp, ok := ecs.GetComponent[*components.CompositeComponent](w.EM, id); ok && len(comp.Members) > 0 {
		large = true
	}
	if pos := w.Position(id); pos != nil {
		if enemy.Drop != components.ItemNone {
			entities.NewItem(w.EM, pos.X, pos.Y, enemy.Drop, w.Config.ItemSpeed, w.Config.ItemLifetime)
		}
		entities.NewExplosion(w.EM, w.Registry, pos.X, pos.Y, large, w.Config.ExplosionLifetime)
	}
	w.Presentation.PlayAnimationTrigger(id, game.TriggerDeath)
	if large {
		w.Audio.PlaySoundEffect(game.SoundLargeExplosion)
	} else {
		w.Audio.PlaySoundEffect(game.SoundExplosion)
	}

	if b := w.behaviorOf(id); b != nil {
		b.OnDeath(w, id)
	}
	w.Registry.UnregisterEnemy(id)
}

// OnBulletHit 玩家子弹命中敌人（碰撞系统回调）
//
// 持续型子弹对同一目标在再命中间隔内不重复结算，命中后不消失。
// 命中率按子弹计：每颗子弹最多计一次命中。
func (w *World) OnBulletHit(bullet, enemy ecs.EntityID) {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.EM, bullet)
	if !ok || !w.EM.IsAlive(enemy) {
		return
	}
	if proj.Persistent {
		if _, cooling := proj.RehitCooldowns[enemy]; cooling {
			return
		}
		proj.RehitCooldowns[enemy] = w.Config.Player.PersistentRehit
	}

	outcome := w.DamageEnemy(enemy, proj.Damage, proj.OneHitKill)
	if outcome == registry.DamageDealt || outcome == registry.DamageKilled {
		w.CountHit(proj)
	}
	if outcome != registry.DamageKilled {
		if b := w.behaviorOf(enemy); b != nil && w.EM.IsAlive(enemy) {
			b.OnCollision(w, enemy, bullet)
		}
	}
	if outcome != registry.DamageNone && !proj.Persistent {
		w.Registry.UnregisterBullet(bullet)
	}
}

// CountHit 每颗子弹只计一次命中（Boss 战扫描也通过它计数）
func (w *World) CountHit(proj *components.ProjectileComponent) {
	if proj.Counted {
		return
	}
	proj.Counted = true
	w.Ledger.RecordHit()
}

// OnPlayerHit 敌方子弹或敌人本体接触玩家（碰撞系统回调）
func (w *World) OnPlayerHit(player, source ecs.EntityID) {
	if w.Registry.Contains(registry.Bullets, source) {
		if w.HitPlayer() {
			w.Registry.UnregisterBullet(source)
		}
		return
	}
	w.HitPlayer()
}

// HitPlayer 玩家被击中
//
// 无敌中返回 false。否则扣一条命，残机小于 0 时游戏结束，
// 否则进入闪烁无敌。
func (w *World) HitPlayer() bool {
	pc := w.PlayerState()
	health := w.Health(w.Player)
	if pc == nil || health == nil || health.Immune || w.GameOver {
		return false
	}

	pc.Lives--
	if pc.Power > 1 {
		pc.Power--
	}
	w.Ledger.LifeUsed = true
	w.Presentation.PlayAnimationTrigger(w.Player, game.TriggerDeath)
	w.Audio.PlaySoundEffect(game.SoundPlayerHit)
	w.HUD.UpdateLivesDisplay(max(pc.Lives, 0))
	w.HUD.UpdatePowerDisplay(pc.Power)

	if pos := w.Position(w.Player); pos != nil {
		entities.NewExplosion(w.EM, w.Registry, pos.X, pos.Y, false, w.Config.ExplosionLifetime)
	}

	if pc.Lives < 0 {
		log.Printf("[Combat] Player out of lives")
		w.GameOver = true
		return true
	}

	// 回到出生点并闪烁无敌
	if pos := w.Position(w.Player); pos != nil {
		pos.X, pos.Y = w.Config.Player.StartX, w.Config.Player.StartY
	}
	pc.Respawning = true
	w.StartInvincibility(w.Player, w.Config.Player.HitInvincibility)
	return true
}

// StartInvincibility 启动闪烁无敌协程：期间免疫伤害，按 FlashInterval 开关闪白
//
// 同一实体重复调用会重置无敌时间。
func (w *World) StartInvincibility(id ecs.EntityID, duration float64) {
	health := w.Health(id)
	if health == nil {
		return
	}
	health.Immune = true
	interval := w.Config.Player.FlashInterval
	elapsed := 0.0
	on := false

	w.Start(id, slotInvincible, routine.Func(func(c *routine.Context) routine.Wait {
		elapsed += c.Waited
		if elapsed >= duration {
			health.Immune = false
			if pc, ok := ecs.GetComponent[*components.PlayerComponent](w.EM, id); ok {
				pc.Respawning = false
			}
			w.Presentation.SetShaderFlash(id, false)
			return routine.Done()
		}
		on = !on
		w.Presentation.SetShaderFlash(id, on)
		return routine.Seconds(interval)
	}))
}

// OnPickup 拾取掉落物（拾取系统回调）
func (w *World) OnPickup(player, item ecs.EntityID, kind components.ItemKind) {
	pc := w.PlayerState()
	if pc == nil {
		return
	}
	w.Audio.PlaySoundEffect(game.SoundItem)

	switch kind {
	case components.ItemPower:
		if pc.Power < w.Config.Player.MaxPower {
			pc.Power++
		}
		w.HUD.UpdatePowerDisplay(pc.Power)
	case components.ItemBomb:
		pc.Bombs++
		w.HUD.UpdateBombsDisplay(pc.Bombs)
	case components.ItemLife:
		pc.Lives++
		w.HUD.UpdateLivesDisplay(pc.Lives)
	case components.ItemMultiplier:
		m := w.Ledger.RaiseMultiplier()
		w.HUD.UpdateMultiplierDisplay(fmt.Sprintf("x%d", m))
	case components.ItemWeapon:
		pc.Weapon = nextWeapon(pc.Weapon)
		pc.LaserHeat, pc.LaserCooldown = 0, 0
		log.Printf("[Combat] Player weapon -> %s", pc.Weapon)
	}
}

func nextWeapon(k components.WeaponKind) components.WeaponKind {
	switch k {
	case components.WeaponNormal:
		return components.WeaponBoomerang
	case components.WeaponBoomerang:
		return components.WeaponLaser
	default:
		return components.WeaponNormal
	}
}

// FireAimed 从实体位置朝最近的玩家角色发射一颗子弹
// 找不到目标时不发射，返回 0
func (w *World) FireAimed(from ecs.EntityID, speed float64) ecs.EntityID {
	pos := w.Position(from)
	if pos == nil {
		return 0
	}
	target, ok := w.Registry.FindNearest(pos.X, pos.Y, components.FactionPlayer, registry.AnyHeight)
	if !ok {
		return 0
	}
	tp := w.Position(target)
	w.Audio.PlaySoundEffect(game.SoundEnemyShot)
	return entities.NewAimedEnemyBullet(w.EM, w.Registry, pos.X, pos.Y, tp.X, tp.Y, speed)
}

// FireAngle 从实体位置沿固定角度（弧度）发射一颗子弹
func (w *World) FireAngle(from ecs.EntityID, heading, speed float64) ecs.EntityID {
	pos := w.Position(from)
	if pos == nil {
		return 0
	}
	w.Audio.PlaySoundEffect(game.SoundEnemyShot)
	return entities.NewEnemyBullet(w.EM, w.Registry, pos.X, pos.Y, heading, speed)
}
