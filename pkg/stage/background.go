package stage

import (
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// Background 背景卷轴
//
// Speed 为当前速度（像素/秒），Offset 为累计卷动距离，供绘制使用。
// 暂停时不卷动。
type Background struct {
	Speed  float64
	Offset float64
}

// Update 推进卷动距离
func (b *Background) Update(dt float64, paused bool) {
	if paused {
		return
	}
	b.Offset += b.Speed * dt
}

// timeEpsilon 与 routine.Timer 相同的浮点容差
const timeEpsilon = 1e-9

// scrollEase 在 duration 秒内把卷轴速度从 from 缓动到 to
//
// 每帧恢复一次，到达终点后结束；作为 Chain 的一部分时，
// 结束的同一帧立即进入下一段。
// sampleFrom 为 true 时 from 取第一次恢复时的卷轴速度。
type scrollEase struct {
	bg         *Background
	from, to   float64
	sampleFrom bool
	duration   float64
	ease       func(float64) float64
	elapsed    float64
	started    bool
}

// Resume 实现 routine.Routine
//
// 第一次恢复时速度为 from，之后每帧累加 Dt，累计满 duration 时速度为 to 并结束。
func (s *scrollEase) Resume(c *routine.Context) routine.Wait {
	if !s.started {
		s.started = true
		if s.sampleFrom {
			s.from = s.bg.Speed
		}
	}
	t := 1.0
	if s.duration > 0 && s.elapsed+timeEpsilon < s.duration {
		t = utils.Clamp01(s.elapsed / s.duration)
	}
	s.bg.Speed = utils.Lerp(s.from, s.to, s.ease(t))
	if t >= 1 {
		return routine.Done()
	}
	s.elapsed += c.Dt
	return routine.Tick()
}
