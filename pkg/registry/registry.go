// Package registry 维护子弹、敌人、爆炸三个活动集合
//
// 注册表独占已注册实体的生命周期：注销即销毁，
// 同时取消该实体名下的全部行为协程。
package registry

import (
	"log"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// Set 活动集合类别
type Set int

const (
	Bullets Set = iota
	Enemies
	Explosions
)

func (s Set) String() string {
	switch s {
	case Bullets:
		return "bullets"
	case Enemies:
		return "enemies"
	default:
		return "explosions"
	}
}

// VerticalFilter 最近目标查询的纵向过滤条件
type VerticalFilter int

const (
	AnyHeight VerticalFilter = iota
	Above                    // 目标 Y 小于查询点
	Below                    // 目标 Y 大于查询点
)

// orderedSet 保持插入顺序的集合
type orderedSet struct {
	ids   []ecs.EntityID
	index map[ecs.EntityID]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[ecs.EntityID]struct{})}
}

func (s *orderedSet) add(id ecs.EntityID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *orderedSet) remove(id ecs.EntityID) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

func (s *orderedSet) contains(id ecs.EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) snapshot() []ecs.EntityID {
	out := make([]ecs.EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Registry 碰撞与角色注册表
type Registry struct {
	em    *ecs.EntityManager
	sched *routine.Scheduler
	sets  [3]*orderedSet

	player ecs.EntityID
}

// NewRegistry 创建注册表
// 参数：
//   - em: 实体管理器
//   - sched: 协程调度器，注销实体时取消其协程；可为 nil
func NewRegistry(em *ecs.EntityManager, sched *routine.Scheduler) *Registry {
	return &Registry{
		em:    em,
		sched: sched,
		sets:  [3]*orderedSet{newOrderedSet(), newOrderedSet(), newOrderedSet()},
	}
}

// SetPlayer 设置玩家实体，用于 FactionPlayer 的最近目标查询
func (r *Registry) SetPlayer(id ecs.EntityID) {
	r.player = id
}

// Player 当前玩家实体
func (r *Registry) Player() ecs.EntityID {
	return r.player
}

// Register 将存活实体加入集合
func (r *Registry) Register(set Set, id ecs.EntityID) {
	utils.Invariant(r.em.IsAlive(id), "register dead entity %d into %s", id, set)
	r.sets[set].add(id)
}

// Unregister 从集合中移除并销毁实体
//
// 不在集合中的实体是无操作：同一帧内先后两次移除同一实体是正常的竞态。
// 组合敌人的父实体被注销时，成员一并注销。
func (r *Registry) Unregister(set Set, id ecs.EntityID) bool {
	if !r.sets[set].remove(id) {
		return false
	}
	r.destroy(id)
	return true
}

func (r *Registry) destroy(id ecs.EntityID) {
	if comp, ok := ecs.GetComponent[*components.CompositeComponent](r.em, id); ok {
		for _, member := range comp.Members {
			// 成员可能已被单独注销
			r.Unregister(Enemies, member)
		}
	}
	if r.sched != nil {
		r.sched.CancelOwner(id)
	}
	r.em.DestroyEntity(id)
}

// RegisterBullet 注册子弹
func (r *Registry) RegisterBullet(id ecs.EntityID) { r.Register(Bullets, id) }

// RegisterEnemy 注册敌人（包括组合敌人的成员和墙体）
func (r *Registry) RegisterEnemy(id ecs.EntityID) { r.Register(Enemies, id) }

// RegisterExplosion 注册爆炸
func (r *Registry) RegisterExplosion(id ecs.EntityID) { r.Register(Explosions, id) }

// UnregisterBullet 注销并销毁子弹
func (r *Registry) UnregisterBullet(id ecs.EntityID) bool { return r.Unregister(Bullets, id) }

// UnregisterEnemy 注销并销毁敌人
func (r *Registry) UnregisterEnemy(id ecs.EntityID) bool { return r.Unregister(Enemies, id) }

// UnregisterExplosion 注销并销毁爆炸
func (r *Registry) UnregisterExplosion(id ecs.EntityID) bool { return r.Unregister(Explosions, id) }

// UnregisterAny 从实体所在的集合中注销
func (r *Registry) UnregisterAny(id ecs.EntityID) bool {
	for set := range r.sets {
		if r.Unregister(Set(set), id) {
			return true
		}
	}
	return false
}

// Contains 实体是否在集合中
func (r *Registry) Contains(set Set, id ecs.EntityID) bool {
	return r.sets[set].contains(id)
}

// Bullets 活动子弹快照（按注册顺序）
func (r *Registry) Bullets() []ecs.EntityID { return r.sets[Bullets].snapshot() }

// Enemies 活动敌人快照（按注册顺序）
func (r *Registry) Enemies() []ecs.EntityID { return r.sets[Enemies].snapshot() }

// Explosions 活动爆炸快照（按注册顺序）
func (r *Registry) Explosions() []ecs.EntityID { return r.sets[Explosions].snapshot() }

// Count 集合大小
func (r *Registry) Count(set Set) int { return len(r.sets[set].ids) }

// Clear 注销全部实体（关卡切换）
func (r *Registry) Clear() {
	total := 0
	for set := range r.sets {
		for _, id := range r.sets[set].snapshot() {
			if r.Unregister(Set(set), id) {
				total++
			}
		}
	}
	log.Printf("[Registry] Cleared %d actor(s)", total)
}

// CheckConsistency 断言集合中没有已销毁的实体
func (r *Registry) CheckConsistency() {
	for set, s := range r.sets {
		for _, id := range s.ids {
			utils.Invariant(r.em.IsAlive(id), "destroyed entity %d still in %s", id, Set(set))
		}
	}
}
