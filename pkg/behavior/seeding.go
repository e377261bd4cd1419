package behavior

import "math/rand"

// 随机方向的种子来源
//
// 种子由游戏状态推导，同样的分数或帧数得到同样的方向序列，
// 每个决策点重新播种一次。

// SeedFromScore 以当前分数的个位数为种子
func SeedFromScore(score int) int64 {
	return int64(score % 10)
}

// SeedFromFrame 以未暂停帧计数为种子
func SeedFromFrame(frame int) int64 {
	return int64(frame)
}

// NewRand 以给定种子创建随机数生成器
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ScoreRand 按当前分数播种
func (w *World) ScoreRand() *rand.Rand {
	return NewRand(SeedFromScore(w.Ledger.Score))
}

// FrameRand 按当前帧数播种
func (w *World) FrameRand() *rand.Rand {
	return NewRand(SeedFromFrame(w.Frame))
}
