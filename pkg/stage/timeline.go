package stage

import (
	"log"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// WaveTimeline 半段的波次时间线
//
// 本段计时器单调递增（每段开始时清零），依次与按时间排序的激活时刻比较，
// 超过时激活下一波。同一波次只会被激活一次，索引钳制在最后一个有效波次。
type WaveTimeline struct {
	waves     []config.WaveConfig
	fightWave int

	timer  routine.Timer
	next   int
	active []bool
}

// NewWaveTimeline 创建时间线
// 参数：
//   - side: 半段配置，波次已按 At 排序
func NewWaveTimeline(side config.SideConfig) *WaveTimeline {
	return &WaveTimeline{
		waves:     side.Waves,
		fightWave: side.FightWave,
		active:    make([]bool, len(side.Waves)),
	}
}

// Update 推进本段计时器，返回本帧到期的波次索引
//
// 一帧内可能有多个波次同时到期，按顺序返回。暂停时不计时也不激活任何波次。
func (t *WaveTimeline) Update(dt float64, paused bool) []int {
	if paused {
		return nil
	}
	t.timer.Advance(dt, false)
	var due []int
	for t.next < len(t.waves) && t.timer.Reached(t.waves[t.next].At) {
		if t.Activate(t.next) {
			due = append(due, t.next)
		}
		t.advance()
	}
	return due
}

// Activate 标记波次为已激活
// 返回：
//   - bool: 首次激活返回 true，重复激活是无操作并返回 false
func (t *WaveTimeline) Activate(index int) bool {
	utils.CheckIndex(index, len(t.waves), "wave")
	if t.active[index] {
		return false
	}
	t.active[index] = true
	log.Printf("[WaveTimeline] Wave %d (%s) activated at %.2fs", index, t.waves[index].Name, t.timer.Elapsed)
	return true
}

// advance 索引前进一步，到达末尾后不再增加
func (t *WaveTimeline) advance() {
	if t.next < len(t.waves) {
		t.next++
	}
}

// Wave 波次配置
func (t *WaveTimeline) Wave(index int) config.WaveConfig {
	utils.CheckIndex(index, len(t.waves), "wave")
	return t.waves[index]
}

// Index 当前波次索引，钳制在 [0, len-1]
func (t *WaveTimeline) Index() int {
	if t.next == 0 {
		return 0
	}
	return min(t.next, len(t.waves)) - 1
}

// IsFightWave 该波次是否为 Boss 战波次
func (t *WaveTimeline) IsFightWave(index int) bool {
	return t.fightWave >= 0 && index == t.fightWave
}

// Finished 所有波次都已激活
func (t *WaveTimeline) Finished() bool {
	return t.next >= len(t.waves)
}

// Elapsed 本段已经过的时间
func (t *WaveTimeline) Elapsed() float64 {
	return t.timer.Elapsed
}

// Len 波次数
func (t *WaveTimeline) Len() int {
	return len(t.waves)
}
