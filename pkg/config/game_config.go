package config

import (
	"fmt"

	"github.com/gonewx/stg/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 屏幕与固定参数
const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 640
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 360

	// DefaultMinibossTimeLimit 中 Boss 战默认时限（秒）
	DefaultMinibossTimeLimit = 60.0

	// TickRate 逻辑帧率
	TickRate = 60
)

// 资源路径
const (
	GameConfigPath      = "data/game.yaml"
	ArchetypeStatsPath  = "data/archetypes.yaml"
	DefaultStageDirPath = "data/stages"
)

// GameConfig 玩法调参
type GameConfig struct {
	LastStage int `yaml:"lastStage"`

	Player PlayerConfig `yaml:"player"`
	Bonus  BonusConfig  `yaml:"bonus"`

	OffscreenMargin   float64 `yaml:"offscreenMargin"`
	ExplosionLifetime float64 `yaml:"explosionLifetime"`
	ItemLifetime      float64 `yaml:"itemLifetime"`
	ItemSpeed         float64 `yaml:"itemSpeed"`
	HitFlashDuration  float64 `yaml:"hitFlashDuration"`
	ArrivalEpsilon    float64 `yaml:"arrivalEpsilon"`
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	StartX, StartY float64    `yaml:"-"`
	Speeds         [4]float64 `yaml:"speeds"` // 速度档位 1-4
	StartSpeed     int        `yaml:"startSpeed"`
	StartLives     int        `yaml:"startLives"`
	StartBombs     int        `yaml:"startBombs"`
	MaxPower       int        `yaml:"maxPower"`
	Radius         float64    `yaml:"radius"`

	FireInterval      float64 `yaml:"fireInterval"`
	BulletSpeed       float64 `yaml:"bulletSpeed"`
	BoomerangRange    float64 `yaml:"boomerangRange"`
	LaserOverheat     float64 `yaml:"laserOverheat"` // 连续开火多久过热（秒）
	LaserCooldown     float64 `yaml:"laserCooldown"` // 过热后冷却时间（秒）
	HitInvincibility  float64 `yaml:"hitInvincibility"`
	FlashInterval     float64 `yaml:"flashInterval"`
	PersistentRehit   float64 `yaml:"persistentRehit"` // 持续型子弹对同一目标的再命中间隔
	BombFlashDuration float64 `yaml:"bombFlashDuration"`
	BombBossDamage    int     `yaml:"bombBossDamage"` // 炸弹对 Boss 造成的伤害
}

// BonusConfig 关卡结算参数
type BonusConfig struct {
	ClearPerStage   int     `yaml:"clearPerStage"`   // 通关奖励 = 关卡 × ClearPerStage
	AccuracyScale   int     `yaml:"accuracyScale"`   // 命中率奖励 = 命中率 × AccuracyScale
	DamagePerKill   int     `yaml:"damagePerKill"`   // 击杀奖励 = 击杀数 × DamagePerKill
	DrainStep       int     `yaml:"drainStep"`       // 每帧结算的分数
	Special         int     `yaml:"special"`         // 完美命中 / 无伤 / 无炸弹奖励
	SpecialDuration float64 `yaml:"specialDuration"` // 每个特别奖励横幅显示时间（秒）
	HoldAfter       float64 `yaml:"holdAfter"`       // 结算完成后停留时间（秒）
}

// DefaultGameConfig 内置默认参数
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	applyGameDefaults(cfg)
	return cfg
}

// LoadGameConfig 从嵌入资源加载玩法参数
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("game config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析、补默认值并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	applyGameDefaults(&cfg)
	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &cfg, nil
}

func applyGameDefaults(cfg *GameConfig) {
	if cfg.LastStage == 0 {
		cfg.LastStage = 2
	}

	p := &cfg.Player
	p.StartX, p.StartY = 80, ScreenHeight/2
	if p.Speeds == [4]float64{} {
		p.Speeds = [4]float64{90, 130, 170, 210}
	}
	if p.StartSpeed == 0 {
		p.StartSpeed = 2
	}
	if p.StartLives == 0 {
		p.StartLives = 3
	}
	if p.StartBombs == 0 {
		p.StartBombs = 3
	}
	if p.MaxPower == 0 {
		p.MaxPower = 4
	}
	if p.Radius == 0 {
		p.Radius = 4
	}
	if p.FireInterval == 0 {
		p.FireInterval = 0.12
	}
	if p.BulletSpeed == 0 {
		p.BulletSpeed = 480
	}
	if p.BoomerangRange == 0 {
		p.BoomerangRange = 220
	}
	if p.LaserOverheat == 0 {
		p.LaserOverheat = 2
	}
	if p.LaserCooldown == 0 {
		p.LaserCooldown = 1.5
	}
	if p.HitInvincibility == 0 {
		p.HitInvincibility = 2
	}
	if p.FlashInterval == 0 {
		p.FlashInterval = 0.1
	}
	if p.PersistentRehit == 0 {
		p.PersistentRehit = 0.2
	}
	if p.BombFlashDuration == 0 {
		p.BombFlashDuration = 0.5
	}
	if p.BombBossDamage == 0 {
		p.BombBossDamage = 10
	}

	b := &cfg.Bonus
	if b.ClearPerStage == 0 {
		b.ClearPerStage = 10000
	}
	if b.AccuracyScale == 0 {
		b.AccuracyScale = 10000
	}
	if b.DamagePerKill == 0 {
		b.DamagePerKill = 100
	}
	if b.DrainStep == 0 {
		b.DrainStep = 100
	}
	if b.Special == 0 {
		b.Special = 10000
	}
	if b.SpecialDuration == 0 {
		b.SpecialDuration = 1
	}
	if b.HoldAfter == 0 {
		b.HoldAfter = 2
	}

	if cfg.OffscreenMargin == 0 {
		cfg.OffscreenMargin = 32
	}
	if cfg.ExplosionLifetime == 0 {
		cfg.ExplosionLifetime = 0.5
	}
	if cfg.ItemLifetime == 0 {
		cfg.ItemLifetime = 8
	}
	if cfg.ItemSpeed == 0 {
		cfg.ItemSpeed = 30
	}
	if cfg.HitFlashDuration == 0 {
		cfg.HitFlashDuration = 0.05
	}
	if cfg.ArrivalEpsilon == 0 {
		cfg.ArrivalEpsilon = 4
	}
}

func validateGameConfig(cfg *GameConfig) error {
	if cfg.LastStage < 1 {
		return fmt.Errorf("lastStage must be at least 1")
	}
	p := cfg.Player
	if p.StartSpeed < 1 || p.StartSpeed > len(p.Speeds) {
		return fmt.Errorf("player.startSpeed must be between 1 and %d, got %d", len(p.Speeds), p.StartSpeed)
	}
	for i, v := range p.Speeds {
		if v <= 0 {
			return fmt.Errorf("player.speeds[%d] must be positive", i)
		}
		if i > 0 && v < p.Speeds[i-1] {
			return fmt.Errorf("player.speeds must be ascending")
		}
	}
	if p.MaxPower < 1 {
		return fmt.Errorf("player.maxPower must be at least 1")
	}
	if cfg.Bonus.DrainStep < 1 {
		return fmt.Errorf("bonus.drainStep must be at least 1")
	}
	return nil
}

// 实体尺寸
const (
	// BulletOffscreenMargin 子弹离开屏幕多远后移除
	BulletOffscreenMargin = 16.0
	// EnemyOffscreenMargin 敌人离开屏幕多远后移除
	EnemyOffscreenMargin = 48.0

	EnemyBulletRadius   = 3.0
	PlayerBulletWidth   = 10.0
	PlayerBulletHeight  = 3.0
	LaserWidth          = 28.0
	LaserHeight         = 4.0
	BoomerangRadius     = 6.0
	ItemRadius          = 6.0
	ExplosionLargeScale = 3.0
)
