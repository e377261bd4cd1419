package game

// MetaContext 跨关卡的玩家进度
//
// 关卡单独运行（调试、验证工具）时没有 MetaContext，
// 使用方持有 *MetaContext 并显式判断 nil，回退到关卡本地的计数器。
type MetaContext struct {
	Stage      int // 当前关卡（1 起）
	LastStage  int // 最后一关
	Score      int // 累计分数
	Lives      int
	Bombs      int
	Power      int
	SpeedLevel int
}

// NewMetaContext 创建一局新游戏的进度
func NewMetaContext(lastStage, lives, bombs int) *MetaContext {
	return &MetaContext{
		Stage:      1,
		LastStage:  lastStage,
		Lives:      lives,
		Bombs:      bombs,
		Power:      1,
		SpeedLevel: 2,
	}
}

// IsLastStage 当前关卡是否为最后一关
func (m *MetaContext) IsLastStage() bool {
	return m.Stage >= m.LastStage
}

// Advance 进入下一关
func (m *MetaContext) Advance() {
	m.Stage++
}
