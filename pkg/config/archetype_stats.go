package config

import (
	"fmt"
	"sort"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ArchetypeStats 单个敌人原型的参数
type ArchetypeStats struct {
	HP          int                `yaml:"hp"`          // 生命值
	Score       int                `yaml:"score"`       // 击杀得分
	RateOfFire  float64            `yaml:"rateOfFire"`  // 射击间隔（秒）
	Speed       float64            `yaml:"speed"`       // 移动速度（像素/秒）
	BulletSpeed float64            `yaml:"bulletSpeed"` // 子弹速度（像素/秒）
	Radius      float64            `yaml:"radius"`      // 碰撞半径
	Drop        string             `yaml:"drop"`        // 默认掉落物
	Params      map[string]float64 `yaml:"params"`      // 原型专用参数
}

// Param 读取原型专用参数，缺省时返回 def
func (s *ArchetypeStats) Param(key string, def float64) float64 {
	if v, ok := s.Params[key]; ok {
		return v
	}
	return def
}

// ArchetypeStatsConfig 原型参数配置文件结构
type ArchetypeStatsConfig struct {
	Archetypes map[string]ArchetypeStats `yaml:"archetypes"`
}

// LoadArchetypeStats 从嵌入资源加载原型参数
func LoadArchetypeStats(path string) (*ArchetypeStatsConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archetype stats file %s: %w", path, err)
	}
	cfg, err := ParseArchetypeStats(data)
	if err != nil {
		return nil, fmt.Errorf("archetype stats %s: %w", path, err)
	}
	return cfg, nil
}

// ParseArchetypeStats 解析并校验原型参数
func ParseArchetypeStats(data []byte) (*ArchetypeStatsConfig, error) {
	var cfg ArchetypeStatsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	applyArchetypeDefaults(&cfg)
	if err := validateArchetypeStats(&cfg); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &cfg, nil
}

func applyArchetypeDefaults(cfg *ArchetypeStatsConfig) {
	for name, stats := range cfg.Archetypes {
		if stats.Radius == 0 {
			stats.Radius = 10
		}
		if stats.BulletSpeed == 0 {
			stats.BulletSpeed = 120
		}
		cfg.Archetypes[name] = stats
	}
}

// validateArchetypeStats 验证原型参数的完整性和合法性
func validateArchetypeStats(cfg *ArchetypeStatsConfig) error {
	if len(cfg.Archetypes) == 0 {
		return fmt.Errorf("at least one archetype is required")
	}

	for _, name := range cfg.Names() {
		stats := cfg.Archetypes[name]
		if stats.HP < 1 {
			return fmt.Errorf("archetype %s: hp must be at least 1, got %d", name, stats.HP)
		}
		if stats.Score < 0 {
			return fmt.Errorf("archetype %s: score cannot be negative, got %d", name, stats.Score)
		}
		if stats.RateOfFire < 0 {
			return fmt.Errorf("archetype %s: rateOfFire cannot be negative", name)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("archetype %s: speed cannot be negative", name)
		}
		if _, ok := components.ParseItemKind(stats.Drop); !ok {
			return fmt.Errorf("archetype %s: unknown drop %q", name, stats.Drop)
		}
	}
	return nil
}

// Names 原型名称（排序后），保证校验和日志输出顺序稳定
func (c *ArchetypeStatsConfig) Names() []string {
	names := make([]string, 0, len(c.Archetypes))
	for name := range c.Archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 获取指定原型的参数
// 如果原型不存在，返回 nil 和 false
func (c *ArchetypeStatsConfig) Get(name string) (*ArchetypeStats, bool) {
	stats, ok := c.Archetypes[name]
	if !ok {
		return nil, false
	}
	return &stats, true
}
