package game

import (
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// MultiplierSteps 分数倍率档位
var MultiplierSteps = [...]int{1, 2, 3, 5, 10}

// MultiplierDuration 倍率在未暂停时间内的有效期（秒）
const MultiplierDuration = 30.0

// ScoreLedger 关卡内的计分账本
//
// 关卡开始时重置。关卡结束时的奖励结算读取其中的射击、命中、击杀计数
// 以及是否损失过生命、是否使用过炸弹。
type ScoreLedger struct {
	Score      int
	ShotsFired int
	Hits       int
	Kills      int
	LifeUsed   bool
	BombUsed   bool

	multiplierIndex int
	multiplierTimer routine.Timer
}

// NewScoreLedger 创建账本，startScore 为承接的总分
func NewScoreLedger(startScore int) *ScoreLedger {
	return &ScoreLedger{Score: startScore}
}

// ResetStage 重置关卡计数器，保留分数
func (l *ScoreLedger) ResetStage() {
	l.ShotsFired = 0
	l.Hits = 0
	l.Kills = 0
	l.LifeUsed = false
	l.BombUsed = false
	l.multiplierIndex = 0
	l.multiplierTimer.Reset()
}

// UpdateScore 按当前倍率加分
// 返回：
//   - int: 实际增加的分数 v*m
func (l *ScoreLedger) UpdateScore(v int) int {
	added := v * l.Multiplier()
	l.Score += added
	return added
}

// AddRaw 不乘倍率直接加分（关卡奖励）
func (l *ScoreLedger) AddRaw(v int) {
	l.Score += v
}

// Multiplier 当前倍率
func (l *ScoreLedger) Multiplier() int {
	utils.CheckIndex(l.multiplierIndex, len(MultiplierSteps), "multiplier")
	return MultiplierSteps[l.multiplierIndex]
}

// RaiseMultiplier 倍率升一档（已在最高档时保持），并重新开始计时
func (l *ScoreLedger) RaiseMultiplier() int {
	if l.multiplierIndex < len(MultiplierSteps)-1 {
		l.multiplierIndex++
	}
	l.multiplierTimer.Reset()
	return l.Multiplier()
}

// Tick 推进倍率计时，到期后倍率回到 1
func (l *ScoreLedger) Tick(dt float64, paused bool) {
	if l.multiplierIndex == 0 {
		return
	}
	l.multiplierTimer.Advance(dt, paused)
	if l.multiplierTimer.Reached(MultiplierDuration) {
		l.multiplierIndex = 0
		l.multiplierTimer.Reset()
	}
}

// MultiplierRemaining 倍率剩余时间（秒）
func (l *ScoreLedger) MultiplierRemaining() float64 {
	if l.multiplierIndex == 0 {
		return 0
	}
	return MultiplierDuration - l.multiplierTimer.Elapsed
}

// RecordShot 记录一次射击
func (l *ScoreLedger) RecordShot(n int) {
	l.ShotsFired += n
}

// RecordHit 记录一次命中
func (l *ScoreLedger) RecordHit() {
	l.Hits++
}

// RecordKill 记录一次击杀
func (l *ScoreLedger) RecordKill() {
	l.Kills++
}

// Accuracy 命中率，四舍五入到两位小数；未射击时为 0
func (l *ScoreLedger) Accuracy() float64 {
	if l.ShotsFired == 0 {
		return 0
	}
	return utils.RoundTo(float64(l.Hits)/float64(l.ShotsFired), 2)
}

// ScoreText HUD 显示用的分数文本
func (l *ScoreLedger) ScoreText() string {
	return utils.FormatScore(l.Score)
}
