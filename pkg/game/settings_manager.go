package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 本机设置（音量、全屏、排行榜默认缩写）
type Settings struct {
	MusicVolume float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	SoundVolume float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
	Muted       bool    `yaml:"muted"`
	Fullscreen  bool    `yaml:"fullscreen"`

	// Initials 上榜时使用的三字母缩写
	Initials string `yaml:"initials"`
}

// DefaultSettings 默认设置
func DefaultSettings() *Settings {
	return &Settings{
		MusicVolume: 0.6,
		SoundVolume: 0.8,
		Initials:    DefaultInitials,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "local"
)

// SettingsManager 设置的加载与保存
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *Settings
}

// NewSettingsManager 创建设置管理器并尝试读取已保存的设置
//
// 读取失败不影响创建，回退到默认设置。
//
// 参数：
//   - gdataManager: 可为 nil
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 读取设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	loaded.Initials = normalizeInitials(loaded.Initials)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 保存设置，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量（限制在 0.0 ~ 1.0），需调用 Save 持久化
func (sm *SettingsManager) SetMusicVolume(v float64) {
	sm.settings.MusicVolume = clampVolume(v)
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0），需调用 Save 持久化
func (sm *SettingsManager) SetSoundVolume(v float64) {
	sm.settings.SoundVolume = clampVolume(v)
}

// ToggleMute 切换静音
func (sm *SettingsManager) ToggleMute() bool {
	sm.settings.Muted = !sm.settings.Muted
	return sm.settings.Muted
}

// SetFullscreen 记录全屏状态
func (sm *SettingsManager) SetFullscreen(on bool) {
	sm.settings.Fullscreen = on
}

// SetInitials 设置上榜缩写（转大写，截断/补齐到三位）
func (sm *SettingsManager) SetInitials(s string) {
	sm.settings.Initials = normalizeInitials(strings.TrimSpace(s))
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
