package routine

import "github.com/gonewx/stg/pkg/ecs"

type waitKind int

const (
	waitTick waitKind = iota
	waitSeconds
	waitUntil
	waitDone
)

// Wait 描述协程的挂起条件，由 Resume 返回
type Wait struct {
	kind    waitKind
	seconds float64
	pred    func() bool
}

// Tick 挂起到下一帧
func Tick() Wait { return Wait{kind: waitTick} }

// Seconds 挂起 s 秒未暂停时间
// 计时从挂起的下一帧开始累积
func Seconds(s float64) Wait { return Wait{kind: waitSeconds, seconds: s} }

// Until 挂起直到 pred 返回 true，每帧检查一次
func Until(pred func() bool) Wait { return Wait{kind: waitUntil, pred: pred} }

// Done 协程结束
func Done() Wait { return Wait{kind: waitDone} }

// IsDone 是否为结束信号
func (w Wait) IsDone() bool { return w.kind == waitDone }

// Context 每次恢复时传给协程的上下文
type Context struct {
	Owner  ecs.EntityID
	Slot   string
	Handle Handle
	// Dt 本帧时间增量
	Dt float64
	// Waited 上一次挂起到本次恢复之间累积的未暂停时间
	Waited float64
}

// Routine 可恢复的行为单元
//
// 每次 Resume 执行到下一个挂起点为止，返回挂起条件。
// 实现通常是一个显式状态枚举加若干局部计数器。
type Routine interface {
	Resume(c *Context) Wait
}

// Func 将函数适配为 Routine
type Func func(c *Context) Wait

// Resume 实现 Routine
func (f Func) Resume(c *Context) Wait { return f(c) }

// Steps 按顺序执行一组步骤的协程
//
// 每个步骤返回一个 Wait，步骤执行完毕后挂起，条件满足后执行下一步。
// 全部执行完后结束。适合过场、阶段切换这类线性序列。
type Steps struct {
	steps []func(c *Context) Wait
	next  int
}

// NewSteps 创建顺序步骤协程
func NewSteps(steps ...func(c *Context) Wait) *Steps {
	return &Steps{steps: steps}
}

// Resume 实现 Routine
func (s *Steps) Resume(c *Context) Wait {
	if s.next >= len(s.steps) {
		return Done()
	}
	step := s.steps[s.next]
	s.next++
	w := step(c)
	if w.IsDone() && s.next < len(s.steps) {
		// 步骤自身不需要等待，直接在下一帧执行后续步骤
		return Tick()
	}
	return w
}

// Loop 循环执行 body 直到 cond 返回 false
//
// cond 在每轮开始时检查，对应"hp>0 时循环"这类约定：
// 协程在循环顶部自行退出，而不是被外部强制终止。
type Loop struct {
	cond  func() bool
	body  []func(c *Context) Wait
	index int
}

// NewLoop 创建循环协程
func NewLoop(cond func() bool, body ...func(c *Context) Wait) *Loop {
	return &Loop{cond: cond, body: body}
}

// Resume 实现 Routine
func (l *Loop) Resume(c *Context) Wait {
	if len(l.body) == 0 {
		return Done()
	}
	if l.index == 0 && !l.cond() {
		return Done()
	}
	step := l.body[l.index]
	l.index = (l.index + 1) % len(l.body)
	w := step(c)
	if w.IsDone() {
		return Done()
	}
	return w
}

// Chain 依次执行多个协程
//
// 前一个协程结束的同一帧内立即恢复下一个，
// 用于"先等待入场，再进入开火循环"这类组合。
type Chain struct {
	parts []Routine
	index int
}

// NewChain 创建串联协程
func NewChain(parts ...Routine) *Chain {
	return &Chain{parts: parts}
}

// Resume 实现 Routine
func (ch *Chain) Resume(c *Context) Wait {
	for ch.index < len(ch.parts) {
		w := ch.parts[ch.index].Resume(c)
		if !w.IsDone() {
			return w
		}
		ch.index++
	}
	return Done()
}
