package behavior

import (
	"log"
	"math"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// 九头蛇的阶段
const (
	hydraVolley     = 1 // 所有头同时开火
	hydraRoundRobin = 2 // 头轮流开火，每个头之间有延迟
)

// hydraNecks 每个头的颈部节数
const hydraNecks = 2

type hydraHead struct {
	id    ecs.EntityID
	necks []ecs.EntityID
	angle float64
}

// Hydra 九头蛇：免疫的身体上伸出若干个头，每个头各有血量，
// 颈部免疫。剩余头数降到阈值时，开火方式从齐射切换为轮流。
// 所有头被消灭即为击败。
type Hydra struct {
	bossBase
	heads     []*hydraHead
	headHP    int
	neck      float64
	phase     int
	remaining int
	next      int
	sway      float64
}

// NewHydra 创建九头蛇
func NewHydra(stats *config.ArchetypeStats, placement config.BossConfig) Boss {
	return &Hydra{bossBase: newBossBase("hydra", stats, placement), phase: hydraVolley}
}

// Start 实现 Boss
func (h *Hydra) Start(w *World) {
	n := int(h.stats.Param("heads", 6))
	utils.Invariant(n > 0, "hydra needs at least one head, got %d", n)
	h.headHP = max(1, h.stats.HP/n)
	h.neck = h.stats.Param("neck", 70)
	h.remaining = n

	body := h.spawnRoot(w, h.stats.Param("bodyRadius", 24), true)
	spread := degrees(h.stats.Param("spread", 120))

	for i := 0; i < n; i++ {
		angle := math.Pi
		if n > 1 {
			angle = math.Pi - spread/2 + float64(i)*spread/float64(n-1)
		}
		hx, hy := utils.PointOnCircle(h.x, h.y, h.neck, angle)
		head := &hydraHead{angle: angle}
		head.id = h.spawnPart(w, body, hx, hy, h.stats.Radius, h.headHP, false)
		for k := 1; k <= hydraNecks; k++ {
			t := float64(k) / float64(hydraNecks+1)
			nx, ny := utils.PointOnCircle(h.x, h.y, h.neck*t, angle)
			head.necks = append(head.necks, h.spawnPart(w, head.id, nx, ny, h.stats.Radius*0.6, 0, true))
		}
		h.heads = append(h.heads, head)
	}

	w.Start(body, slotMove, routine.Func(func(c *routine.Context) routine.Wait {
		if h.Defeated() {
			return routine.Done()
		}
		h.sway += c.Dt
		h.layout(w)
		return routine.Tick()
	}))
	w.Start(body, slotFire, h.volley(w))
}

// layout 头部随时间摆动，颈部均匀分布在身体与头之间
func (h *Hydra) layout(w *World) {
	for i, head := range h.heads {
		if !w.EM.IsAlive(head.id) {
			continue
		}
		reach := h.neck + 8*math.Sin(h.sway*2+float64(i))
		if pos := w.Position(head.id); pos != nil {
			pos.X, pos.Y = utils.PointOnCircle(h.x, h.y, reach, head.angle)
		}
		for k, neck := range head.necks {
			t := float64(k+1) / float64(len(head.necks)+1)
			if pos := w.Position(neck); pos != nil {
				pos.X, pos.Y = utils.PointOnCircle(h.x, h.y, reach*t, head.angle)
			}
		}
	}
}

// volley 第一阶段：所有头同时开火
func (h *Hydra) volley(w *World) routine.Routine {
	return routine.NewLoop(h.alive, func(c *routine.Context) routine.Wait {
		for _, head := range h.heads {
			if w.EM.IsAlive(head.id) {
				w.FireAimed(head.id, h.stats.BulletSpeed)
			}
		}
		return routine.Seconds(h.stats.RateOfFire)
	})
}

// roundRobin 第二阶段：头轮流开火
func (h *Hydra) roundRobin(w *World) routine.Routine {
	delay := h.stats.Param("headDelay", 0.4)
	return routine.NewLoop(h.alive, func(c *routine.Context) routine.Wait {
		utils.CheckIndex(h.next, len(h.heads), "hydra head")
		for i := 0; i < len(h.heads); i++ {
			head := h.heads[h.next]
			h.next = (h.next + 1) % len(h.heads)
			if w.EM.IsAlive(head.id) {
				w.FireAimed(head.id, h.stats.BulletSpeed)
				w.Presentation.PlayAnimationTrigger(head.id, game.TriggerFire)
				break
			}
		}
		return routine.Seconds(delay)
	})
}

// Phase 当前阶段
func (h *Hydra) Phase() int { return h.phase }

// HeadsRemaining 剩余头数
func (h *Hydra) HeadsRemaining() int { return h.remaining }

// Heads 所有头（含已消灭的）
func (h *Hydra) Heads() []ecs.EntityID {
	out := make([]ecs.EntityID, len(h.heads))
	for i, head := range h.heads {
		out[i] = head.id
	}
	return out
}

// CheckCollision 实现 Boss：头可受伤，颈部和身体免疫
func (h *Hydra) CheckCollision(w *World, bullet ecs.EntityID, damage int) HitResult {
	if h.Defeated() {
		return HitNone
	}
	for _, head := range h.heads {
		if touching(w, bullet, head.id) {
			h.damageHead(w, head, damage)
			return HitDamage
		}
	}
	for _, id := range h.Colliders() {
		if touching(w, bullet, id) {
			w.Audio.PlaySoundEffect(game.SoundImmuneHit)
			return HitImmune
		}
	}
	return HitNone
}

// TakeDamage 实现 Boss：伤害落在第一个存活的头上
func (h *Hydra) TakeDamage(w *World, damage int) HitResult {
	for _, head := range h.heads {
		if w.EM.IsAlive(head.id) {
			h.damageHead(w, head, damage)
			return HitDamage
		}
	}
	return HitNone
}

func (h *Hydra) damageHead(w *World, head *hydraHead, damage int) {
	hc := w.Health(head.id)
	if hc == nil || hc.HP <= 0 {
		return
	}
	hc.HP -= damage
	if hc.HP > 0 {
		w.Flash(head.id)
		w.Audio.PlaySoundEffect(game.SoundHit)
		return
	}
	hc.HP = 0

	if pos := w.Position(head.id); pos != nil {
		entities.NewExplosion(w.EM, w.Registry, pos.X, pos.Y, false, w.Config.ExplosionLifetime)
	}
	w.Presentation.PlayAnimationTrigger(head.id, game.TriggerDeath)
	w.Audio.PlaySoundEffect(game.SoundExplosion)
	w.Registry.UnregisterEnemy(head.id)
	h.remaining--
	log.Printf("[Hydra] Head destroyed, %d remaining", h.remaining)

	if h.phase == hydraVolley && h.remaining > 0 && h.remaining <= int(h.stats.Param("phaseHeads", 4)) {
		h.phase = hydraRoundRobin
		log.Printf("[Hydra] Switching to round-robin fire")
		// 同一槽位重启，齐射协程被取消
		w.Start(h.root, slotFire, h.roundRobin(w))
	}
}

// HP 实现 Boss：所有存活头的血量之和
func (h *Hydra) HP() int {
	total := 0
	for _, head := range h.heads {
		if hc, ok := ecs.GetComponent[*components.HealthComponent](h.em, head.id); ok && h.em.IsAlive(head.id) {
			total += hc.HP
		}
	}
	return total
}

// MaxHP 实现 Boss
func (h *Hydra) MaxHP() int { return h.headHP * len(h.heads) }

// Defeated 实现 Boss
func (h *Hydra) Defeated() bool { return h.done || h.remaining <= 0 }

func (h *Hydra) alive() bool { return !h.Defeated() }
