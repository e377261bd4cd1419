package behavior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/entities"
	"github.com/gonewx/stg/pkg/game"
)

// testStats 测试用原型参数，数值取整便于推算
func testStats() *config.ArchetypeStatsConfig {
	return &config.ArchetypeStatsConfig{Archetypes: map[string]config.ArchetypeStats{
		"turret":    {HP: 15, Score: 100, RateOfFire: 2, BulletSpeed: 120, Radius: 10, Drop: "none"},
		"fly":       {HP: 2, Score: 50, RateOfFire: 1, Speed: 80, BulletSpeed: 120, Radius: 8},
		"snake":     {HP: 5, Score: 300, RateOfFire: 1, Speed: 60, BulletSpeed: 120, Radius: 6, Params: map[string]float64{"segments": 5}},
		"fold_wall": {HP: 10, Score: 200, Radius: 8},
		"hydra":     {HP: 60, Score: 5000, RateOfFire: 1, BulletSpeed: 120, Radius: 12, Params: map[string]float64{"heads": 6, "phaseHeads": 4}},
		"mirror":    {HP: 10, Score: 3000, RateOfFire: 1, Speed: 100, BulletSpeed: 120, Radius: 12, Params: map[string]float64{"lives": 3}},
		"core":      {HP: 100, Score: 8000, RateOfFire: 1, BulletSpeed: 120, Radius: 16},
		"factory":   {HP: 40, Score: 6000, RateOfFire: 1, BulletSpeed: 120, Radius: 20, Params: map[string]float64{"spawnInterval": 2}},
		"cube":      {HP: 8, Score: 150, RateOfFire: 1, BulletSpeed: 110, Radius: 10, Params: map[string]float64{"shots": 4}},
		"wheel":     {HP: 20, Score: 400, RateOfFire: 0.5, BulletSpeed: 100, Radius: 10, Params: map[string]float64{"arms": 2, "step": 12}},
		"formation_box": {HP: 6, Score: 250, RateOfFire: 1, Speed: 100, BulletSpeed: 120, Radius: 10,
			Params: map[string]float64{"burst": 3, "burstGap": 0.1, "stopX": 480}},
		"disc":         {HP: 3, Score: 120, Speed: 120, BulletSpeed: 100, Radius: 8, Params: map[string]float64{"angle": 180, "turnX": 420, "shots": 8}},
		"twitch_plane": {HP: 3, Score: 90, Speed: 100, BulletSpeed: 120, Radius: 8, Params: map[string]float64{"twitchX": 540, "twitch": 0.5}},
	}}
}

type testWorld struct {
	*World
	presentation *game.RecordingPresentation
	audio        *game.RecordingAudio
	hud          *game.RecordingHUD
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := NewWorld(config.DefaultGameConfig(), testStats(), game.NewScoreLedger(0), nil)
	tw := &testWorld{
		World:        w,
		presentation: &game.RecordingPresentation{},
		audio:        &game.RecordingAudio{},
		hud:          game.NewRecordingHUD(),
	}
	w.Presentation = tw.presentation
	w.Audio = tw.audio
	w.HUD = tw.hud
	w.Player = entities.NewPlayer(w.EM, w.Registry, &w.Config.Player, nil)
	require.NotNil(t, w.PlayerState())
	return tw
}

// headingsOf 返回子弹的朝向（弧度，归一化到 [0, 2π)）
func (tw *testWorld) headingsOf(ids []ecs.EntityID) []float64 {
	out := make([]float64, 0, len(ids))
	for _, id := range ids {
		h := math.Mod(tw.Motion(id).Heading, 2*math.Pi)
		if h < 0 {
			h += 2 * math.Pi
		}
		out = append(out, h)
	}
	return out
}

// tick 推进调度器 n 帧
func (tw *testWorld) tick(n int, dt float64) {
	for i := 0; i < n; i++ {
		tw.Frame++
		tw.Scheduler.Update(dt)
	}
}
