package game

import "github.com/gonewx/stg/pkg/ecs"

// 核心玩法调用的外部协作者。
// 全部是"发出即忘"的调用，核心不消费返回值（持久化除外）。

// Presentation 动画与着色器效果
type Presentation interface {
	PlayAnimationTrigger(id ecs.EntityID, trigger string)
	SetSpriteTier(id ecs.EntityID, tier int)
	SetShaderFlash(id ecs.EntityID, on bool)
}

// Audio 音乐与音效
type Audio interface {
	PlayMusicTrack(index int)
	PlaySoundEffect(index int)
}

// HUD 界面显示，传入的值已格式化完毕
type HUD interface {
	UpdateScoreDisplay(text string)
	UpdateLivesDisplay(n int)
	UpdateBombsDisplay(n int)
	UpdateSpeedDisplay(n int)
	UpdatePowerDisplay(n int)
	UpdateMultiplierDisplay(text string)
	// UpdateHighScoreDisplay 排行榜榜首分数
	UpdateHighScoreDisplay(text string)
	// UpdateBonusDisplay 关卡结算时更新某一项奖励的显示值
	UpdateBonusDisplay(name, text string)
	SetBannerVisible(name string, on bool)
}

// HighScoreStore 排行榜持久化
type HighScoreStore interface {
	LoadHighScoreTable() ([]HighScoreRecord, error)
	SaveHighScoreTable(records []HighScoreRecord) error
}

// StageLoader 加载下一关
type StageLoader interface {
	LoadStage(stage int)
}

// 音乐曲目
const (
	MusicStage = iota
	MusicMiniboss
	MusicBoss
	MusicStageClear
	MusicGameOver
)

// 音效
const (
	SoundPlayerShot = iota
	SoundEnemyShot
	SoundExplosion
	SoundLargeExplosion
	SoundHit
	SoundImmuneHit
	SoundItem
	SoundBomb
	SoundPlayerHit
	SoundBonusTick
	SoundPause
)

// 动画触发器名称
const (
	TriggerDeath      = "death"
	TriggerFire       = "fire"
	TriggerBarrelRoll = "barrel_roll"
	TriggerOpen       = "open"
	TriggerClose      = "close"
	TriggerIntro      = "intro"
)

// 结算奖励与横幅名称
const (
	BonusClear    = "clear"
	BonusAccuracy = "accuracy"
	BonusDamage   = "damage"

	// BonusAccuracyRate 命中率百分比文本（"80.0%"）
	BonusAccuracyRate = "accuracy_rate"

	BannerPaused       = "paused"
	BannerStageClear   = "stage_clear"
	BannerPerfectAim   = "perfect_aim"
	BannerNoMiss       = "no_miss"
	BannerNoBombs      = "no_bombs"
	BannerGameOver     = "game_over"
	BannerGameComplete = "game_complete"
	BannerWarning      = "warning"
)

// NopPresentation 空实现
type NopPresentation struct{}

func (NopPresentation) PlayAnimationTrigger(ecs.EntityID, string) {}
func (NopPresentation) SetSpriteTier(ecs.EntityID, int)           {}
func (NopPresentation) SetShaderFlash(ecs.EntityID, bool)         {}

// NopAudio 空实现
type NopAudio struct{}

func (NopAudio) PlayMusicTrack(int)  {}
func (NopAudio) PlaySoundEffect(int) {}

// NopHUD 空实现
type NopHUD struct{}

func (NopHUD) UpdateScoreDisplay(string)         {}
func (NopHUD) UpdateLivesDisplay(int)            {}
func (NopHUD) UpdateBombsDisplay(int)            {}
func (NopHUD) UpdateSpeedDisplay(int)            {}
func (NopHUD) UpdatePowerDisplay(int)            {}
func (NopHUD) UpdateMultiplierDisplay(string)    {}
func (NopHUD) UpdateHighScoreDisplay(string)     {}
func (NopHUD) UpdateBonusDisplay(string, string) {}
func (NopHUD) SetBannerVisible(string, bool)     {}
