package game

import "github.com/gonewx/stg/pkg/ecs"

// 记录调用的协作者实现，测试和无界面验证工具共用。

// PresentationCall 一次表现层调用
type PresentationCall struct {
	Entity  ecs.EntityID
	Method  string // "trigger" / "tier" / "flash"
	Trigger string
	Tier    int
	On      bool
}

// RecordingPresentation 记录所有表现层调用
type RecordingPresentation struct {
	Calls []PresentationCall
}

func (p *RecordingPresentation) PlayAnimationTrigger(id ecs.EntityID, trigger string) {
	p.Calls = append(p.Calls, PresentationCall{Entity: id, Method: "trigger", Trigger: trigger})
}

func (p *RecordingPresentation) SetSpriteTier(id ecs.EntityID, tier int) {
	p.Calls = append(p.Calls, PresentationCall{Entity: id, Method: "tier", Tier: tier})
}

func (p *RecordingPresentation) SetShaderFlash(id ecs.EntityID, on bool) {
	p.Calls = append(p.Calls, PresentationCall{Entity: id, Method: "flash", On: on})
}

// Triggers 某实体收到的动画触发器（按顺序）
func (p *RecordingPresentation) Triggers(id ecs.EntityID) []string {
	var out []string
	for _, c := range p.Calls {
		if c.Entity == id && c.Method == "trigger" {
			out = append(out, c.Trigger)
		}
	}
	return out
}

// CountTrigger 所有实体上某触发器出现的次数
func (p *RecordingPresentation) CountTrigger(trigger string) int {
	n := 0
	for _, c := range p.Calls {
		if c.Method == "trigger" && c.Trigger == trigger {
			n++
		}
	}
	return n
}

// Tiers 某实体的精灵档位变化序列
func (p *RecordingPresentation) Tiers(id ecs.EntityID) []int {
	var out []int
	for _, c := range p.Calls {
		if c.Entity == id && c.Method == "tier" {
			out = append(out, c.Tier)
		}
	}
	return out
}

// RecordingAudio 记录播放过的曲目和音效
type RecordingAudio struct {
	Music  []int
	Sounds []int
}

func (a *RecordingAudio) PlayMusicTrack(index int)  { a.Music = append(a.Music, index) }
func (a *RecordingAudio) PlaySoundEffect(index int) { a.Sounds = append(a.Sounds, index) }

// BannerEvent 横幅开关事件
type BannerEvent struct {
	Name string
	On   bool
}

// RecordingHUD 记录 HUD 的最新值和变化历史
type RecordingHUD struct {
	Score      string
	Lives      int
	Bombs      int
	Speed      int
	Power      int
	Multiplier string
	HighScore  string

	// BonusHistory 每项奖励的显示值序列
	BonusHistory map[string][]string
	Banners      []BannerEvent
}

// NewRecordingHUD 创建 RecordingHUD
func NewRecordingHUD() *RecordingHUD {
	return &RecordingHUD{BonusHistory: make(map[string][]string)}
}

func (h *RecordingHUD) UpdateScoreDisplay(text string)      { h.Score = text }
func (h *RecordingHUD) UpdateLivesDisplay(n int)            { h.Lives = n }
func (h *RecordingHUD) UpdateBombsDisplay(n int)            { h.Bombs = n }
func (h *RecordingHUD) UpdateSpeedDisplay(n int)            { h.Speed = n }
func (h *RecordingHUD) UpdatePowerDisplay(n int)            { h.Power = n }
func (h *RecordingHUD) UpdateMultiplierDisplay(text string) { h.Multiplier = text }
func (h *RecordingHUD) UpdateHighScoreDisplay(text string)  { h.HighScore = text }

func (h *RecordingHUD) UpdateBonusDisplay(name, text string) {
	if h.BonusHistory == nil {
		h.BonusHistory = make(map[string][]string)
	}
	h.BonusHistory[name] = append(h.BonusHistory[name], text)
}

func (h *RecordingHUD) SetBannerVisible(name string, on bool) {
	h.Banners = append(h.Banners, BannerEvent{Name: name, On: on})
}

// BannerShown 横幅是否曾被打开
func (h *RecordingHUD) BannerShown(name string) bool {
	for _, b := range h.Banners {
		if b.Name == name && b.On {
			return true
		}
	}
	return false
}

// RecordingStageLoader 记录被请求加载的关卡
type RecordingStageLoader struct {
	Loaded []int
}

func (l *RecordingStageLoader) LoadStage(stage int) { l.Loaded = append(l.Loaded, stage) }
