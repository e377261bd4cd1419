// Package stage 实现关卡编排：两段波次时间线、中 Boss / Boss 战、
// 过场、关卡结算以及每帧的执行顺序。
package stage

// Phase 关卡阶段
//
// 阶段只会向前推进：Intro → WavesA → (Miniboss) → TransitionB → WavesB
// → BossTransition → Boss → EndOfStage → StageComplete / GameComplete。
// GameOver 可以从任意阶段进入。
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseWavesA
	PhaseMiniboss
	PhaseTransitionB
	PhaseWavesB
	PhaseBossTransition
	PhaseBoss
	PhaseEndOfStage
	PhaseStageComplete
	PhaseGameComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "Intro"
	case PhaseWavesA:
		return "WavesA"
	case PhaseMiniboss:
		return "Miniboss"
	case PhaseTransitionB:
		return "TransitionB"
	case PhaseWavesB:
		return "WavesB"
	case PhaseBossTransition:
		return "BossTransition"
	case PhaseBoss:
		return "Boss"
	case PhaseEndOfStage:
		return "EndOfStage"
	case PhaseStageComplete:
		return "StageComplete"
	case PhaseGameComplete:
		return "GameComplete"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Pausable 该阶段是否允许暂停
func (p Phase) Pausable() bool {
	switch p {
	case PhaseWavesA, PhaseMiniboss, PhaseWavesB, PhaseBoss:
		return true
	default:
		return false
	}
}

// Terminal 关卡流程已经结束
func (p Phase) Terminal() bool {
	return p >= PhaseStageComplete
}
