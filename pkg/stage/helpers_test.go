package stage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/game"
)

const testDt = 0.125

func testStats() *config.ArchetypeStatsConfig {
	return &config.ArchetypeStatsConfig{Archetypes: map[string]config.ArchetypeStats{
		"turret":  {HP: 15, Score: 100, RateOfFire: 2, BulletSpeed: 120, Radius: 10, Drop: "none"},
		"fly":     {HP: 2, Score: 50, RateOfFire: 1, Speed: 80, BulletSpeed: 120, Radius: 8},
		"factory": {HP: 40, Score: 6000, RateOfFire: 1, BulletSpeed: 120, Radius: 20, Params: map[string]float64{"spawnInterval": 2}},
	}}
}

// minibossStage A 段第 0 波即中 Boss（2 秒时限），B 段第 0 波即 Boss
const minibossStage = `
stage: 1
name: test
introDuration: 0.5
minibossTimeLimit: 2
sideA:
  fightWave: 0
  waves:
    - name: a0
      at: 0
sideB:
  fightWave: 0
  waves:
    - name: b0
      at: 0
miniboss:
  archetype: factory
  x: 500
  y: 180
boss:
  archetype: factory
  x: 520
  y: 180
`

// plainStage 没有中 Boss，A 段 10 秒后结束
const plainStage = `
stage: 1
name: plain
introDuration: 0.5
sideA:
  waves:
    - name: a0
      at: 0
    - name: a1
      at: 10
sideB:
  fightWave: 0
  waves:
    - name: b0
      at: 0
boss:
  archetype: factory
  x: 520
  y: 180
`

type testSession struct {
	*Session
	presentation *game.RecordingPresentation
	audio        *game.RecordingAudio
	hud          *game.RecordingHUD
	loader       *game.RecordingStageLoader
	store        *game.HighScoreManager
}

func newTestSession(t *testing.T, stageYAML string, meta *game.MetaContext) *testSession {
	t.Helper()
	stageCfg, err := config.ParseStageConfig([]byte(stageYAML))
	require.NoError(t, err)

	ts := &testSession{
		presentation: &game.RecordingPresentation{},
		audio:        &game.RecordingAudio{},
		hud:          game.NewRecordingHUD(),
		loader:       &game.RecordingStageLoader{},
		store:        game.NewHighScoreManager(nil),
	}
	ts.Session = NewSession(Options{
		Config:       config.DefaultGameConfig(),
		Stats:        testStats(),
		Stage:        stageCfg,
		Ledger:       game.NewScoreLedger(0),
		Meta:         meta,
		Presentation: ts.presentation,
		Audio:        ts.audio,
		HUD:          ts.hud,
		Loader:       ts.loader,
		Store:        ts.store,
	})
	return ts
}

// tickUntil 推进到 cond 成立，最多 limit 帧，返回推进的帧数
func (ts *testSession) tickUntil(t *testing.T, limit int, cond func() bool) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return i
		}
		ts.Tick(testDt, game.Signals{})
	}
	require.True(t, cond(), "condition not reached within %d ticks (phase=%s)", limit, ts.Phase())
	return limit
}
