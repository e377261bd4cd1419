package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/ecs"
)

type fixture struct {
	em     *ecs.EntityManager
	paused bool
	s      *Scheduler
}

func newFixture() *fixture {
	f := &fixture{em: ecs.NewEntityManager()}
	f.s = NewScheduler(f.em.IsAlive, func() bool { return f.paused })
	return f
}

func TestFirstResumeHappensOnNextUpdate(t *testing.T) {
	f := newFixture()
	calls := 0
	f.s.Start(NoOwner, "", Func(func(c *Context) Wait {
		calls++
		return Tick()
	}))
	assert.Equal(t, 0, calls)

	f.s.Update(0.1)
	assert.Equal(t, 1, calls)
	f.s.Update(0.1)
	assert.Equal(t, 2, calls)
}

func TestSecondsWaitAccumulatesOnlyUnpausedTime(t *testing.T) {
	f := newFixture()
	resumed := 0
	f.s.Start(NoOwner, "", Func(func(c *Context) Wait {
		resumed++
		return Seconds(1.0)
	}))

	f.s.Update(0.25) // 第一次执行，开始等待
	require.Equal(t, 1, resumed)

	f.s.Update(0.25)
	f.s.Update(0.25)

	f.paused = true
	for i := 0; i < 50; i++ {
		f.s.Update(0.25)
	}
	assert.Equal(t, 1, resumed, "pause must not let the wait progress")

	f.paused = false
	f.s.Update(0.25)
	assert.Equal(t, 1, resumed, "progress before the pause must be kept")
	f.s.Update(0.25)
	assert.Equal(t, 2, resumed)
}

func TestUntilPredicateNotEvaluatedWhilePaused(t *testing.T) {
	f := newFixture()
	evaluated := 0
	done := false
	f.s.Start(NoOwner, "", NewSteps(
		func(c *Context) Wait {
			return Until(func() bool {
				evaluated++
				return true
			})
		},
		func(c *Context) Wait {
			done = true
			return Done()
		},
	))
	f.s.Update(0.1)
	f.paused = true
	f.s.Update(0.1)
	assert.Equal(t, 0, evaluated)

	f.paused = false
	f.s.Update(0.1)
	assert.Equal(t, 1, evaluated)
	assert.True(t, done)
	assert.Equal(t, 0, f.s.Count())
}

func TestStartOnSameSlotCancelsPrevious(t *testing.T) {
	f := newFixture()
	owner := f.em.CreateEntity()
	var log []string

	first := f.s.Start(owner, "fire", Func(func(c *Context) Wait {
		log = append(log, "first")
		return Tick()
	}))
	f.s.Update(0.1)

	second := f.s.Start(owner, "fire", Func(func(c *Context) Wait {
		log = append(log, "second")
		return Tick()
	}))
	f.s.Update(0.1)
	f.s.Update(0.1)

	assert.False(t, f.s.Running(first))
	assert.True(t, f.s.Running(second))
	assert.Equal(t, []string{"first", "second", "second"}, log)
}

func TestDifferentSlotsRunConcurrently(t *testing.T) {
	f := newFixture()
	owner := f.em.CreateEntity()
	f.s.Start(owner, "move", Func(func(c *Context) Wait { return Tick() }))
	f.s.Start(owner, "fire", Func(func(c *Context) Wait { return Tick() }))
	f.s.Start(owner, "", Func(func(c *Context) Wait { return Tick() }))
	f.s.Start(owner, "", Func(func(c *Context) Wait { return Tick() }))
	f.s.Update(0.1)
	assert.Equal(t, 4, f.s.Count())
}

func TestRoutineStopsWhenOwnerDestroyed(t *testing.T) {
	f := newFixture()
	owner := f.em.CreateEntity()
	calls := 0
	h := f.s.Start(owner, "", Func(func(c *Context) Wait {
		calls++
		return Tick()
	}))
	f.s.Update(0.1)
	require.Equal(t, 1, calls)

	f.em.DestroyEntity(owner)
	f.s.Update(0.1)
	f.em.RemoveMarkedEntities()
	f.s.Update(0.1)

	assert.Equal(t, 1, calls, "no resume after the owner died")
	assert.False(t, f.s.Running(h))
}

func TestCancelOwnerStopsAllSlots(t *testing.T) {
	f := newFixture()
	a := f.em.CreateEntity()
	b := f.em.CreateEntity()
	f.s.Start(a, "move", Func(func(c *Context) Wait { return Tick() }))
	f.s.Start(a, "fire", Func(func(c *Context) Wait { return Tick() }))
	hb := f.s.Start(b, "move", Func(func(c *Context) Wait { return Tick() }))

	f.s.CancelOwner(a)
	f.s.Update(0.1)

	assert.Equal(t, 1, f.s.Count())
	assert.True(t, f.s.Running(hb))
	assert.False(t, f.s.RunningSlot(a, "fire"))
}

func TestRoutineStartedDuringUpdateRunsNextUpdate(t *testing.T) {
	f := newFixture()
	childRuns := 0
	f.s.Start(NoOwner, "", NewSteps(func(c *Context) Wait {
		f.s.Start(NoOwner, "", Func(func(c *Context) Wait {
			childRuns++
			return Done()
		}))
		return Done()
	}))

	f.s.Update(0.1)
	assert.Equal(t, 0, childRuns)
	f.s.Update(0.1)
	assert.Equal(t, 1, childRuns)
}

func TestLoopChecksConditionAtTop(t *testing.T) {
	f := newFixture()
	hp := 3
	shots := 0
	f.s.Start(NoOwner, "", NewLoop(func() bool { return hp > 0 },
		func(c *Context) Wait {
			shots++
			hp--
			return Tick()
		},
		func(c *Context) Wait { return Seconds(0.2) },
	))

	for i := 0; i < 40; i++ {
		f.s.Update(0.1)
	}
	assert.Equal(t, 3, shots)
	assert.Equal(t, 0, f.s.Count())
}

func TestWaitedReportsUnpausedTime(t *testing.T) {
	f := newFixture()
	var waited []float64
	f.s.Start(NoOwner, "", Func(func(c *Context) Wait {
		waited = append(waited, c.Waited)
		return Seconds(0.3)
	}))
	for i := 0; i < 4; i++ {
		f.s.Update(0.1)
	}
	require.Len(t, waited, 2)
	assert.InDelta(t, 0.3, waited[1], 1e-9)
}

func TestChainRunsNextPartInSameUpdate(t *testing.T) {
	f := newFixture()
	var log []string
	ready := false
	f.s.Start(NoOwner, "", NewChain(
		NewSteps(func(c *Context) Wait {
			log = append(log, "wait")
			return Until(func() bool { return ready })
		}),
		Func(func(c *Context) Wait {
			log = append(log, "body")
			return Done()
		}),
	))

	f.s.Update(0.1)
	f.s.Update(0.1)
	assert.Equal(t, []string{"wait"}, log)

	ready = true
	f.s.Update(0.1)
	assert.Equal(t, []string{"wait", "body"}, log)
	assert.Equal(t, 0, f.s.Count())
}
