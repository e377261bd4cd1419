package routine

import (
	"log"

	"github.com/gonewx/stg/pkg/ecs"
)

// Handle 标识一个已启动的协程
type Handle uint64

// NoOwner 不绑定实体的协程（关卡级序列）使用的所有者
const NoOwner ecs.EntityID = 0

type task struct {
	handle    Handle
	owner     ecs.EntityID
	slot      string
	routine   Routine
	wait      Wait
	timer     Timer
	cancelled bool
}

// Scheduler 协作式协程调度器
//
// 每帧 Update 一次，单线程执行，不会阻塞。
// 暂停时所有协程原地挂起：计时器不前进，谓词也不会被求值。
type Scheduler struct {
	alive  func(ecs.EntityID) bool
	paused func() bool

	tasks      []*task
	byHandle   map[Handle]*task
	bySlot     map[slotKey]*task
	nextHandle Handle
}

type slotKey struct {
	owner ecs.EntityID
	slot  string
}

// NewScheduler 创建调度器
// 参数：
//   - alive: 判断所有者实体是否存活，所有者死亡的协程在下一次调度前被取消
//   - paused: 全局暂停标志
func NewScheduler(alive func(ecs.EntityID) bool, paused func() bool) *Scheduler {
	if paused == nil {
		paused = func() bool { return false }
	}
	return &Scheduler{
		alive:      alive,
		paused:     paused,
		byHandle:   make(map[Handle]*task),
		bySlot:     make(map[slotKey]*task),
		nextHandle: 1,
	}
}

// Start 启动协程
//
// slot 非空时，同一所有者同一槽位上已有的协程会先被取消，
// 保证每个槽位同时只有一个实例在驱动。
// 新协程在下一次 Update 时第一次执行。
func (s *Scheduler) Start(owner ecs.EntityID, slot string, r Routine) Handle {
	if slot != "" {
		s.CancelSlot(owner, slot)
	}
	t := &task{
		handle:  s.nextHandle,
		owner:   owner,
		slot:    slot,
		routine: r,
		wait:    Tick(),
	}
	s.nextHandle++
	s.tasks = append(s.tasks, t)
	s.byHandle[t.handle] = t
	if slot != "" {
		s.bySlot[slotKey{owner, slot}] = t
	}
	return t.handle
}

// Update 推进所有协程一帧
func (s *Scheduler) Update(dt float64) {
	if s.paused() {
		return
	}

	// 遍历快照：本帧内新启动的协程从下一帧开始执行
	snapshot := make([]*task, len(s.tasks))
	copy(snapshot, s.tasks)

	for _, t := range snapshot {
		if t.cancelled {
			continue
		}
		if t.owner != NoOwner && s.alive != nil && !s.alive(t.owner) {
			s.cancel(t)
			continue
		}
		if !s.ready(t, dt) {
			continue
		}

		ctx := &Context{
			Owner:  t.owner,
			Slot:   t.slot,
			Handle: t.handle,
			Dt:     dt,
			Waited: t.timer.Elapsed,
		}
		w := t.routine.Resume(ctx)
		if t.cancelled {
			// 协程在执行中取消了自己（例如所有者死亡）
			continue
		}
		if w.IsDone() {
			s.cancel(t)
			continue
		}
		t.wait = w
		t.timer.Reset()
	}

	s.compact()
}

// ready 判断挂起条件是否满足，Seconds 等待在这里累积时间
func (s *Scheduler) ready(t *task, dt float64) bool {
	switch t.wait.kind {
	case waitTick:
		return true
	case waitSeconds:
		t.timer.Advance(dt, false)
		return t.timer.Reached(t.wait.seconds)
	case waitUntil:
		t.timer.Advance(dt, false)
		return t.wait.pred == nil || t.wait.pred()
	default:
		return false
	}
}

// Cancel 取消协程，对已结束的句柄无操作
func (s *Scheduler) Cancel(h Handle) {
	if t, ok := s.byHandle[h]; ok {
		s.cancel(t)
	}
}

// CancelSlot 取消所有者在指定槽位上的协程
func (s *Scheduler) CancelSlot(owner ecs.EntityID, slot string) {
	if t, ok := s.bySlot[slotKey{owner, slot}]; ok {
		s.cancel(t)
	}
}

// CancelOwner 取消所有者的全部协程
// 实体被注销时调用，之后不会再有协程观察或修改该实体
func (s *Scheduler) CancelOwner(owner ecs.EntityID) {
	n := 0
	for _, t := range s.tasks {
		if t.owner == owner && !t.cancelled {
			s.cancel(t)
			n++
		}
	}
	if n > 0 && owner != NoOwner {
		log.Printf("[Scheduler] Cancelled %d routine(s) of entity %d", n, owner)
	}
}

// Running 协程是否仍在运行
func (s *Scheduler) Running(h Handle) bool {
	t, ok := s.byHandle[h]
	return ok && !t.cancelled
}

// RunningSlot 所有者的槽位上是否有协程在运行
func (s *Scheduler) RunningSlot(owner ecs.EntityID, slot string) bool {
	t, ok := s.bySlot[slotKey{owner, slot}]
	return ok && !t.cancelled
}

// Count 运行中的协程数量
func (s *Scheduler) Count() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Clear 取消全部协程（关卡切换时使用）
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		s.cancel(t)
	}
	s.compact()
}

func (s *Scheduler) cancel(t *task) {
	if t.cancelled {
		return
	}
	t.cancelled = true
	delete(s.byHandle, t.handle)
	if t.slot != "" {
		key := slotKey{t.owner, t.slot}
		if cur, ok := s.bySlot[key]; ok && cur == t {
			delete(s.bySlot, key)
		}
	}
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}
