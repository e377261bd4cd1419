package stage

import (
	"log"

	"github.com/gonewx/stg/pkg/behavior"
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/routine"
)

// FightOutcome Boss 战循环每帧的结果
type FightOutcome int

const (
	FightOngoing FightOutcome = iota
	// FightVictory Boss 血量归零
	FightVictory
	// FightTimeout 中 Boss 战超时
	FightTimeout
)

func (o FightOutcome) String() string {
	switch o {
	case FightVictory:
		return "victory"
	case FightTimeout:
		return "timeout"
	default:
		return "ongoing"
	}
}

// BossFight 中 Boss / Boss 战循环
//
// 每帧扫描所有玩家子弹，对 Boss 的部件调用 CheckCollision：
//   - HitDamage: 计入命中（每颗子弹一次），普通子弹消耗
//   - HitImmune: 普通子弹同样消耗，不计命中
//   - 持续型子弹对 Boss 按根实体记录再命中冷却，不消耗
//
// 只有中 Boss 有时限，超时走不播放死亡动画的路径。
type BossFight struct {
	w         *behavior.World
	boss      behavior.Boss
	timeLimit float64
	timer     routine.Timer

	// Hits 本场命中次数
	Hits int
}

// NewBossFight 创建 Boss 战循环
// 参数：
//   - boss: 已经 Start 的 Boss
//   - timeLimit: 时限（秒），0 表示没有时限
func NewBossFight(w *behavior.World, boss behavior.Boss, timeLimit float64) *BossFight {
	return &BossFight{w: w, boss: boss, timeLimit: timeLimit}
}

// Boss 正在进行的 Boss
func (f *BossFight) Boss() behavior.Boss { return f.boss }

// Elapsed 战斗已进行的时间
func (f *BossFight) Elapsed() float64 { return f.timer.Elapsed }

// Update 推进一帧，暂停时由调用方跳过
func (f *BossFight) Update(dt float64) FightOutcome {
	if f.boss.Defeated() {
		return FightVictory
	}
	w := f.w
	root := f.boss.Root()

	for _, bullet := range w.Registry.Bullets() {
		if !w.EM.IsAlive(bullet) {
			continue
		}
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.EM, bullet)
		if !ok || proj.Owner != components.FactionPlayer {
			continue
		}
		if proj.Persistent {
			if _, cooling := proj.RehitCooldowns[root]; cooling {
				continue
			}
		}

		result := f.boss.CheckCollision(w, bullet, proj.Damage)
		if result == behavior.HitNone {
			continue
		}
		if result == behavior.HitDamage {
			f.Hits++
			w.CountHit(proj)
		}
		if proj.Persistent {
			proj.RehitCooldowns[root] = w.Config.Player.PersistentRehit
		} else {
			w.Registry.UnregisterBullet(bullet)
		}

		if f.boss.Defeated() {
			log.Printf("[BossFight] Boss defeated after %d hits (%.1fs)", f.Hits, f.timer.Elapsed)
			return FightVictory
		}
	}

	f.timer.Advance(dt, false)
	if f.timeLimit > 0 && f.timer.Reached(f.timeLimit) {
		log.Printf("[BossFight] Time limit %.0fs reached (hp=%d)", f.timeLimit, f.boss.HP())
		return FightTimeout
	}
	return FightOngoing
}
