package routine

// Timer 只在未暂停时累积的计时器
//
// 所有"等待 N 秒"、冷却、无敌时间都基于它实现，
// 暂停期间既不前进也不重置，恢复后从原进度继续。
type Timer struct {
	Elapsed float64
}

// timeEpsilon 吸收逐帧累加 dt 带来的浮点误差
const timeEpsilon = 1e-9

// Advance 推进计时器
// 参数：
//   - dt: 本帧时间增量（秒）
//   - paused: 游戏是否处于暂停状态
func (t *Timer) Advance(dt float64, paused bool) {
	if paused {
		return
	}
	t.Elapsed += dt
}

// Reached 是否已累计到 seconds
func (t *Timer) Reached(seconds float64) bool {
	return t.Elapsed+timeEpsilon >= seconds
}

// Reset 清零
func (t *Timer) Reset() {
	t.Elapsed = 0
}
