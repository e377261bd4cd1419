package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
)

func TestIntroLeadsToWavesA(t *testing.T) {
	ts := newTestSession(t, plainStage, nil)
	assert.Equal(t, PhaseIntro, ts.Phase())
	assert.Equal(t, []string{game.TriggerIntro}, ts.presentation.Triggers(ts.World.Player))

	// 开场 0.5 秒，第一次恢复在下一帧
	n := ts.tickUntil(t, 20, func() bool { return ts.Phase() == PhaseWavesA })
	assert.Equal(t, 5, n)
	assert.Equal(t, 40.0, ts.Background.Speed)
}

func TestMinibossTimeoutSkipsDeathAndGoesToSideB(t *testing.T) {
	ts := newTestSession(t, minibossStage, nil)

	ts.tickUntil(t, 40, func() bool { return ts.Phase() == PhaseMiniboss })
	fight := ts.Orchestrator.Fight()
	require.NotNil(t, fight)
	root := fight.Boss().Root()
	assert.Equal(t, fight.Boss(), ts.World.ActiveBoss)
	assert.Equal(t, game.MusicMiniboss, ts.audio.Music[len(ts.audio.Music)-1])

	var seen []Phase
	ts.tickUntil(t, 40, func() bool {
		seen = append(seen, ts.Phase())
		return ts.Phase() != PhaseMiniboss
	})

	assert.Equal(t, PhaseWavesB, ts.Phase())
	assert.NotContains(t, seen, PhaseTransitionB)
	assert.NotContains(t, ts.presentation.Triggers(root), game.TriggerDeath)
	assert.False(t, ts.World.Registry.Contains(registry.Enemies, root))
	assert.Nil(t, ts.World.ActiveBoss)
	assert.GreaterOrEqual(t, fight.Elapsed()+1e-9, 2.0)
	assert.Equal(t, 0, ts.World.Ledger.Kills)
}

func TestPauseFreezesStageProgress(t *testing.T) {
	ts := newTestSession(t, plainStage, nil)

	// 开场阶段不能暂停
	ts.Tick(testDt, game.Signals{Start: game.Press()})
	assert.False(t, ts.World.Paused)

	ts.tickUntil(t, 20, func() bool { return ts.Phase() == PhaseWavesA })
	elapsed := ts.Orchestrator.Timeline().Elapsed()
	frame := ts.World.Frame

	ts.Tick(testDt, game.Signals{Start: game.Press()})
	require.True(t, ts.World.Paused)
	for i := 0; i < 50; i++ {
		ts.Tick(testDt, game.Signals{Start: game.Hold()})
	}
	assert.Equal(t, elapsed, ts.Orchestrator.Timeline().Elapsed())
	assert.Equal(t, frame, ts.World.Frame)
	assert.Equal(t, PhaseWavesA, ts.Phase())

	ts.Tick(testDt, game.Signals{Start: game.Press()})
	assert.False(t, ts.World.Paused)
	assert.InDelta(t, elapsed+testDt, ts.Orchestrator.Timeline().Elapsed(), 1e-9)
	assert.Equal(t, []game.BannerEvent{
		{Name: game.BannerPaused, On: true},
		{Name: game.BannerPaused, On: false},
	}, ts.hud.Banners)
}

func TestBossTransitionHasFixedDuration(t *testing.T) {
	ts := newTestSession(t, plainStage, nil)
	total := ts.Orchestrator.stage.Transition.Total()
	boost := ts.Orchestrator.stage.Transition.BoostSpeed

	ts.tickUntil(t, 400, func() bool { return ts.Phase() == PhaseBossTransition })
	assert.True(t, ts.hud.BannerShown(game.BannerWarning))

	peak := 0.0
	n := ts.tickUntil(t, 400, func() bool {
		peak = max(peak, ts.Background.Speed)
		return ts.Phase() == PhaseBoss
	})
	duration := float64(n) * testDt
	assert.GreaterOrEqual(t, duration, total)
	assert.LessOrEqual(t, duration, total+2*testDt)

	assert.InDelta(t, boost, peak, 1e-6)
	assert.InDelta(t, 0, ts.Background.Speed, 1e-9)
	assert.NotNil(t, ts.World.ActiveBoss)
	assert.Equal(t, game.MusicBoss, ts.audio.Music[len(ts.audio.Music)-1])
}

func TestStageCompleteWithoutMetaLoadsNextStage(t *testing.T) {
	ts := newTestSession(t, plainStage, nil)
	ts.Orchestrator.endOfStage()
	ts.tickUntil(t, 2000, ts.Finished)

	assert.Equal(t, PhaseStageComplete, ts.Phase())
	assert.Equal(t, []int{2}, ts.loader.Loaded)
	assert.True(t, ts.hud.BannerShown(game.BannerStageClear))
	assert.Equal(t, -1, ts.Orchestrator.Rank())
}

func TestStageCompleteCarriesProgressIntoMeta(t *testing.T) {
	meta := game.NewMetaContext(3, 3, 3)
	ts := newTestSession(t, plainStage, meta)
	ts.World.PlayerState().Lives = 1
	ts.World.PlayerState().Power = 3

	ts.Orchestrator.endOfStage()
	ts.tickUntil(t, 2000, ts.Finished)

	assert.Equal(t, PhaseStageComplete, ts.Phase())
	assert.Equal(t, 2, meta.Stage)
	assert.Equal(t, 1, meta.Lives)
	assert.Equal(t, 3, meta.Power)
	assert.Equal(t, ts.World.Ledger.Score, meta.Score)
	assert.Equal(t, []int{2}, ts.loader.Loaded)
}

func TestLastStageCompletesGameAndSubmitsScore(t *testing.T) {
	meta := game.NewMetaContext(2, 3, 3)
	meta.Stage = 2
	ts := newTestSession(t, plainStage, meta)
	ts.World.Ledger.Score = 500000

	ts.Orchestrator.endOfStage()
	ts.tickUntil(t, 2000, ts.Finished)

	assert.Equal(t, PhaseGameComplete, ts.Phase())
	assert.Empty(t, ts.loader.Loaded)
	assert.True(t, ts.hud.BannerShown(game.BannerGameComplete))
	assert.Equal(t, 0, ts.Orchestrator.Rank())

	records, err := ts.store.LoadHighScoreTable()
	require.NoError(t, err)
	assert.Equal(t, ts.World.Ledger.Score, records[0].Score)
}

func TestGameOverFromAnyPhase(t *testing.T) {
	ts := newTestSession(t, plainStage, nil)
	ts.tickUntil(t, 20, func() bool { return ts.Phase() == PhaseWavesA })
	ts.World.Ledger.Score = 150000
	ts.World.GameOver = true

	ts.Tick(testDt, game.Signals{})
	assert.Equal(t, PhaseGameOver, ts.Phase())
	assert.True(t, ts.hud.BannerShown(game.BannerGameOver))
	assert.Equal(t, game.MusicGameOver, ts.audio.Music[len(ts.audio.Music)-1])
	assert.Equal(t, 0, ts.Orchestrator.Rank())

	// 游戏结束后既不能暂停，也不再推进
	frame := ts.World.Frame
	ts.Tick(testDt, game.Signals{Start: game.Press()})
	assert.False(t, ts.World.Paused)
	assert.Equal(t, frame, ts.World.Frame)
}
