package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/stg/pkg/embedded"
)

const minimalStageYAML = `stage: 3
name: Test
sideA:
  waves:
    - at: 4
      enemies:
        - { archetype: fly, x: 660, y: 100 }
    - at: 1
      enemies:
        - { archetype: turret, x: 660, y: 300, drop: bomb }
sideB:
  fightWave: 0
  waves:
    - at: 0
boss:
  archetype: core
  x: 500
  y: 180
`

// TestParseStageConfig_Defaults 缺省字段补默认值，波次按时间排序
func TestParseStageConfig_Defaults(t *testing.T) {
	cfg, err := ParseStageConfig([]byte(minimalStageYAML))
	if err != nil {
		t.Fatalf("ParseStageConfig() failed: %v", err)
	}

	if cfg.ScrollSpeed != 40 {
		t.Errorf("ScrollSpeed: got %v, want 40", cfg.ScrollSpeed)
	}
	if cfg.IntroDuration != 2 || cfg.SideTransitionDuration != 3 {
		t.Errorf("durations: got intro %v side %v", cfg.IntroDuration, cfg.SideTransitionDuration)
	}
	if cfg.MinibossTimeLimit != DefaultMinibossTimeLimit {
		t.Errorf("MinibossTimeLimit: got %v", cfg.MinibossTimeLimit)
	}
	if cfg.HasMiniboss() {
		t.Error("stage without miniboss archetype should not have a miniboss")
	}
	if cfg.SideA.FightWave != -1 {
		t.Errorf("SideA.FightWave: got %d, want -1", cfg.SideA.FightWave)
	}

	// 波次按激活时间排序
	if cfg.SideA.Waves[0].At != 1 || cfg.SideA.Waves[1].At != 4 {
		t.Errorf("waves not sorted: %v, %v", cfg.SideA.Waves[0].At, cfg.SideA.Waves[1].At)
	}

	tr := cfg.Transition
	if tr.Total() != 7 {
		t.Errorf("Transition.Total(): got %v, want 7", tr.Total())
	}
	if tr.BoostSpeed != 240 {
		t.Errorf("BoostSpeed: got %v, want 240", tr.BoostSpeed)
	}
}

// TestParseStageConfig_Invalid 各种非法配置
func TestParseStageConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "stage zero",
			mutate:  func(s string) string { return strings.Replace(s, "stage: 3", "stage: 0", 1) },
			wantErr: "stage must be at least 1",
		},
		{
			name:    "missing name",
			mutate:  func(s string) string { return strings.Replace(s, "name: Test\n", "", 1) },
			wantErr: "stage name is required",
		},
		{
			name:    "missing boss",
			mutate:  func(s string) string { return strings.Replace(s, "archetype: core", "archetype: \"\"", 1) },
			wantErr: "boss archetype is required",
		},
		{
			name:    "unknown drop",
			mutate:  func(s string) string { return strings.Replace(s, "drop: bomb", "drop: coffee", 1) },
			wantErr: "unknown drop",
		},
		{
			name:    "fight wave out of range",
			mutate:  func(s string) string { return strings.Replace(s, "fightWave: 0", "fightWave: 1", 1) },
			wantErr: "out of range",
		},
		{
			name:    "no boss fight wave",
			mutate:  func(s string) string { return strings.Replace(s, "fightWave: 0", "fightWave: -1", 1) },
			wantErr: "fightWave is required",
		},
		{
			name:    "malformed yaml",
			mutate:  func(s string) string { return s + "\n  : [" },
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStageConfig([]byte(tt.mutate(minimalStageYAML)))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoadStageConfigFile 从磁盘读取
func TestLoadStageConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stage3.yaml")
	if err := os.WriteFile(path, []byte(minimalStageYAML), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadStageConfigFile(path)
	if err != nil {
		t.Fatalf("LoadStageConfigFile() failed: %v", err)
	}
	if cfg.Stage != 3 || cfg.Boss.Archetype != "core" {
		t.Errorf("unexpected config: stage %d boss %q", cfg.Stage, cfg.Boss.Archetype)
	}

	if _, err := LoadStageConfigFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestShippedData 随程序发布的数据文件都能通过校验，且关卡引用的原型都存在
func TestShippedData(t *testing.T) {
	if err := embedded.InitFromDir("../.."); err != nil {
		t.Fatalf("InitFromDir: %v", err)
	}

	gameCfg, err := LoadGameConfig(GameConfigPath)
	if err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	stats, err := LoadArchetypeStats(ArchetypeStatsPath)
	if err != nil {
		t.Fatalf("LoadArchetypeStats: %v", err)
	}

	for stage := 1; stage <= gameCfg.LastStage; stage++ {
		cfg, err := LoadStageConfig(StagePath(stage))
		if err != nil {
			t.Fatalf("stage %d: %v", stage, err)
		}
		if cfg.Stage != stage {
			t.Errorf("%s declares stage %d", StagePath(stage), cfg.Stage)
		}

		names := []string{cfg.Boss.Archetype}
		if cfg.HasMiniboss() {
			names = append(names, cfg.Miniboss.Archetype)
		}
		for _, side := range []SideConfig{cfg.SideA, cfg.SideB} {
			for _, wave := range side.Waves {
				for _, e := range wave.Enemies {
					names = append(names, e.Archetype)
				}
			}
		}
		for _, name := range names {
			if _, ok := stats.Get(name); !ok {
				t.Errorf("stage %d references unknown archetype %q", stage, name)
			}
		}
	}
}
