package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// StageConfig 关卡配置
// 定义两段波次时间线、中 Boss、Boss 以及过场参数
type StageConfig struct {
	Stage       int     `yaml:"stage"`       // 关卡序号，从 1 开始
	Name        string  `yaml:"name"`        // 关卡名称
	ScrollSpeed float64 `yaml:"scrollSpeed"` // 背景卷轴速度（像素/秒），默认 40
	Music       int     `yaml:"music"`       // 关卡音乐曲目

	IntroDuration          float64 `yaml:"introDuration"`          // 开场时长（秒），默认 2
	SideTransitionDuration float64 `yaml:"sideTransitionDuration"` // A 段到 B 段的过场时长（秒），默认 3
	MinibossTimeLimit      float64 `yaml:"minibossTimeLimit"`      // 中 Boss 战时限（秒），默认 60

	SideA SideConfig `yaml:"sideA"`
	SideB SideConfig `yaml:"sideB"`

	Miniboss   BossConfig       `yaml:"miniboss"` // Archetype 为空表示跳过中 Boss
	Boss       BossConfig       `yaml:"boss"`
	Transition TransitionConfig `yaml:"bossTransition"`
}

// SideConfig 半段波次时间线
type SideConfig struct {
	Waves []WaveConfig `yaml:"waves"`

	// FightWave 到达该波次索引时开始 Boss 战（A 段为中 Boss，B 段为 Boss），-1 表示没有
	FightWave int `yaml:"fightWave"`
}

// WaveConfig 一组预先摆放的敌人及其激活时间
type WaveConfig struct {
	Name    string        `yaml:"name"`
	At      float64       `yaml:"at"` // 相对本段开始的激活时间（秒）
	Enemies []SpawnConfig `yaml:"enemies"`
}

// SpawnConfig 单个敌人的摆放
type SpawnConfig struct {
	Archetype string             `yaml:"archetype"`
	X         float64            `yaml:"x"`
	Y         float64            `yaml:"y"`
	HP        int                `yaml:"hp"`   // 覆盖原型血量，0 表示使用原型默认值
	Drop      string             `yaml:"drop"` // 掉落物，覆盖原型默认值
	Params    map[string]float64 `yaml:"params"`
}

// BossConfig Boss 摆放
type BossConfig struct {
	Archetype string             `yaml:"archetype"`
	X         float64            `yaml:"x"`
	Y         float64            `yaml:"y"`
	Params    map[string]float64 `yaml:"params"`
}

// TransitionConfig Boss 房间揭示过场
//
// 顺序：HoldBefore → 加速 Accelerate 秒到 BoostSpeed → 保持 Cruise 秒
// → 减速 Decelerate 秒到 0 → HoldAfter。总时长固定。
type TransitionConfig struct {
	HoldBefore float64 `yaml:"holdBefore"`
	Accelerate float64 `yaml:"accelerate"`
	Cruise     float64 `yaml:"cruise"`
	Decelerate float64 `yaml:"decelerate"`
	HoldAfter  float64 `yaml:"holdAfter"`
	BoostSpeed float64 `yaml:"boostSpeed"`
}

// Total 过场总时长
func (t TransitionConfig) Total() float64 {
	return t.HoldBefore + t.Accelerate + t.Cruise + t.Decelerate + t.HoldAfter
}

// HasMiniboss 是否配置了中 Boss
func (c *StageConfig) HasMiniboss() bool {
	return c.Miniboss.Archetype != "" && c.SideA.FightWave >= 0
}

// LoadStageConfig 从嵌入资源加载关卡配置
// 参数：
//
//	path - 以 "data/" 开头的嵌入资源路径
//
// 返回：
//
//	*StageConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败
func LoadStageConfig(path string) (*StageConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config %s: %w", path, err)
	}
	cfg, err := ParseStageConfig(data)
	if err != nil {
		return nil, fmt.Errorf("stage config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadStageConfigFile 从磁盘加载关卡配置（开发期热重载使用）
func LoadStageConfigFile(path string) (*StageConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config file %s: %w", path, err)
	}
	cfg, err := ParseStageConfig(data)
	if err != nil {
		return nil, fmt.Errorf("stage config file %s: %w", path, err)
	}
	return cfg, nil
}

// StagePath 关卡序号对应的嵌入资源路径
func StagePath(stage int) string {
	return fmt.Sprintf("data/stages/stage%d.yaml", stage)
}

// ParseStageConfig 解析 YAML、补默认值并校验
func ParseStageConfig(data []byte) (*StageConfig, error) {
	var cfg StageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyStageDefaults(&cfg)

	if err := validateStageConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &cfg, nil
}

// applyStageDefaults 为缺失的可选字段设置默认值，并按激活时间排序波次
func applyStageDefaults(cfg *StageConfig) {
	if cfg.ScrollSpeed == 0 {
		cfg.ScrollSpeed = 40
	}
	if cfg.IntroDuration == 0 {
		cfg.IntroDuration = 2
	}
	if cfg.SideTransitionDuration == 0 {
		cfg.SideTransitionDuration = 3
	}
	if cfg.MinibossTimeLimit == 0 {
		cfg.MinibossTimeLimit = DefaultMinibossTimeLimit
	}

	if cfg.Miniboss.Archetype == "" {
		cfg.SideA.FightWave = -1
	}

	t := &cfg.Transition
	if t.Total() == 0 {
		t.HoldBefore = 1
		t.Accelerate = 1.5
		t.Cruise = 2
		t.Decelerate = 1.5
		t.HoldAfter = 1
	}
	if t.BoostSpeed == 0 {
		t.BoostSpeed = cfg.ScrollSpeed * 6
	}

	for _, side := range []*SideConfig{&cfg.SideA, &cfg.SideB} {
		// 稳定排序：同一时间的波次保持配置顺序
		sort.SliceStable(side.Waves, func(i, j int) bool {
			return side.Waves[i].At < side.Waves[j].At
		})
	}
}

// validateStageConfig 验证关卡配置的完整性和合法性
func validateStageConfig(cfg *StageConfig) error {
	if cfg.Stage < 1 {
		return fmt.Errorf("stage must be at least 1, got %d", cfg.Stage)
	}
	if cfg.Name == "" {
		return fmt.Errorf("stage name is required")
	}
	if cfg.ScrollSpeed < 0 {
		return fmt.Errorf("scrollSpeed cannot be negative")
	}
	if cfg.Boss.Archetype == "" {
		return fmt.Errorf("boss archetype is required")
	}

	if err := validateSide("sideA", &cfg.SideA); err != nil {
		return err
	}
	if err := validateSide("sideB", &cfg.SideB); err != nil {
		return err
	}
	if cfg.SideB.FightWave < 0 {
		return fmt.Errorf("sideB: fightWave is required to start the boss")
	}

	t := cfg.Transition
	for name, v := range map[string]float64{
		"holdBefore": t.HoldBefore, "accelerate": t.Accelerate, "cruise": t.Cruise,
		"decelerate": t.Decelerate, "holdAfter": t.HoldAfter,
	} {
		if v < 0 {
			return fmt.Errorf("bossTransition.%s cannot be negative", name)
		}
	}
	return nil
}

func validateSide(name string, side *SideConfig) error {
	if len(side.Waves) == 0 {
		return fmt.Errorf("%s: at least one wave is required", name)
	}
	if side.FightWave >= len(side.Waves) {
		return fmt.Errorf("%s: fightWave %d out of range [0, %d)", name, side.FightWave, len(side.Waves))
	}
	for i, wave := range side.Waves {
		if wave.At < 0 {
			return fmt.Errorf("%s wave %d: at cannot be negative", name, i)
		}
		for j, e := range wave.Enemies {
			if e.Archetype == "" {
				return fmt.Errorf("%s wave %d, enemy %d: archetype is required", name, i, j)
			}
			if e.HP < 0 {
				return fmt.Errorf("%s wave %d, enemy %d: hp cannot be negative", name, i, j)
			}
			if _, ok := components.ParseItemKind(e.Drop); !ok {
				return fmt.Errorf("%s wave %d, enemy %d: unknown drop %q", name, i, j, e.Drop)
			}
		}
	}
	return nil
}
