package stage

import (
	"log"

	"github.com/gonewx/stg/pkg/behavior"
	"github.com/gonewx/stg/pkg/components"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/ecs"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/registry"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// slotStage 关卡编排自身的协程槽位（开场、过场、结算），同时只有一个
const slotStage = "stage"

// Orchestrator 关卡状态机
//
// 阶段顺序见 Phase。暂停是与阶段正交的全局标志，只在可暂停的阶段响应切换。
// 计时性的阶段（开场、A/B 段过场、Boss 过场、结算）都是调度器上的协程，
// 暂停时与其他协程一起冻结。
type Orchestrator struct {
	w          *behavior.World
	stage      *config.StageConfig
	background *Background
	loader     game.StageLoader
	store      game.HighScoreStore

	phase    Phase
	timeline *WaveTimeline
	fight    *BossFight
	bonus    *BonusSequence

	// Initials 提交排行榜时使用的名字缩写
	Initials string
	rank     int
}

// NewOrchestrator 创建关卡编排
// 参数：
//   - w: 共享的 World
//   - stage: 已校验的关卡配置
//   - bg: 背景卷轴，过场会改变其速度
//   - loader: 通关后加载下一关，可为 nil
//   - store: 排行榜存储，可为 nil（不提交成绩）
func NewOrchestrator(w *behavior.World, stage *config.StageConfig, bg *Background, loader game.StageLoader, store game.HighScoreStore) *Orchestrator {
	return &Orchestrator{
		w:          w,
		stage:      stage,
		background: bg,
		loader:     loader,
		store:      store,
		Initials:   game.DefaultInitials,
		rank:       -1,
	}
}

// Phase 当前阶段
func (o *Orchestrator) Phase() Phase { return o.phase }

// Timeline 当前半段的波次时间线，开场阶段为 nil
func (o *Orchestrator) Timeline() *WaveTimeline { return o.timeline }

// Fight 正在进行的 Boss 战，没有时为 nil
func (o *Orchestrator) Fight() *BossFight { return o.fight }

// Bonus 结算序列，结算开始前为 nil
func (o *Orchestrator) Bonus() *BonusSequence { return o.bonus }

// Rank 提交成绩后的名次（0 起），未上榜或未提交为 -1
func (o *Orchestrator) Rank() int { return o.rank }

// Start 开始关卡：重置关卡计数，播放音乐和开场动画，开场结束后进入 A 段
func (o *Orchestrator) Start() {
	w := o.w
	w.Ledger.ResetStage()
	o.background.Speed = o.stage.ScrollSpeed
	w.Audio.PlayMusicTrack(o.stage.Music)
	w.Presentation.PlayAnimationTrigger(w.Player, game.TriggerIntro)
	w.HUD.UpdateScoreDisplay(w.Ledger.ScoreText())
	if o.store != nil {
		if top, err := game.TopScoreOf(o.store); err != nil {
			log.Printf("[Orchestrator] Failed to load high scores: %v", err)
		} else {
			w.HUD.UpdateHighScoreDisplay(utils.FormatScore(top))
		}
	}

	log.Printf("[Orchestrator] Stage %d (%s) started, intro %.1fs", o.stage.Stage, o.stage.Name, o.stage.IntroDuration)
	w.Start(routine.NoOwner, slotStage, routine.NewSteps(
		func(c *routine.Context) routine.Wait { return routine.Seconds(o.stage.IntroDuration) },
		func(c *routine.Context) routine.Wait {
			o.enterSide(PhaseWavesA)
			return routine.Done()
		},
	))
}

// HandleInput 处理暂停切换
//
// Start 键在本帧按下时切换暂停；开场、过场、结算和游戏结束后不响应。
func (o *Orchestrator) HandleInput(in game.Signals) {
	if !in.Start.Pressed {
		return
	}
	w := o.w
	if w.GameOver || !o.phase.Pausable() {
		return
	}
	w.Paused = !w.Paused
	w.HUD.SetBannerVisible(game.BannerPaused, w.Paused)
	w.Audio.PlaySoundEffect(game.SoundPause)
	log.Printf("[Orchestrator] Paused=%v in %s", w.Paused, o.phase)
}

// Update 推进一帧状态机，在所有系统更新之后调用
func (o *Orchestrator) Update(dt float64) {
	w := o.w
	if w.Paused || o.phase.Terminal() {
		return
	}
	if w.GameOver {
		o.gameOver()
		return
	}

	switch o.phase {
	case PhaseWavesA, PhaseMiniboss, PhaseWavesB, PhaseBoss:
		o.updateWaves(dt)
	}

	switch o.phase {
	case PhaseWavesA:
		if !o.stage.HasMiniboss() && o.timeline.Finished() && w.Registry.Count(registry.Enemies) == 0 {
			o.startTransitionB()
		}
	case PhaseMiniboss:
		switch o.fight.Update(dt) {
		case FightVictory:
			o.fight.Boss().PlayDeath(w)
			o.endFight()
			o.startTransitionB()
		case FightTimeout:
			// 超时：不播放死亡动画，直接进入 B 段
			o.fight.Boss().Despawn(w)
			o.endFight()
			w.Audio.PlayMusicTrack(o.stage.Music)
			o.enterSide(PhaseWavesB)
		}
	case PhaseBoss:
		if o.fight.Update(dt) == FightVictory {
			o.fight.Boss().PlayDeath(w)
			o.endFight()
			o.endOfStage()
		}
	}
}

// updateWaves 推进当前半段的时间线并生成到期的波次
func (o *Orchestrator) updateWaves(dt float64) {
	if o.timeline == nil {
		return
	}
	for _, index := range o.timeline.Update(dt, false) {
		wave := o.timeline.Wave(index)
		for _, spawn := range wave.Enemies {
			if _, err := o.w.SpawnEnemy(spawn); err != nil {
				log.Printf("[Orchestrator] Wave %d (%s): %v", index, wave.Name, err)
			}
		}
		if !o.timeline.IsFightWave(index) {
			continue
		}
		switch o.phase {
		case PhaseWavesA:
			o.startMiniboss()
		case PhaseWavesB:
			o.startBossTransition()
		}
	}
}

// enterSide 进入 A 段或 B 段，时间线从 0 开始
func (o *Orchestrator) enterSide(p Phase) {
	side := o.stage.SideA
	if p == PhaseWavesB {
		side = o.stage.SideB
	}
	o.timeline = NewWaveTimeline(side)
	o.background.Speed = o.stage.ScrollSpeed
	o.advance(p)
}

func (o *Orchestrator) startMiniboss() {
	w := o.w
	boss, err := w.SpawnBoss(o.stage.Miniboss)
	if err != nil {
		log.Printf("[Orchestrator] Failed to spawn miniboss: %v", err)
		o.startTransitionB()
		return
	}
	o.beginFight(boss, o.stage.MinibossTimeLimit)
	w.Audio.PlayMusicTrack(game.MusicMiniboss)
	o.advance(PhaseMiniboss)
}

// startTransitionB A 段与 B 段之间的过场
func (o *Orchestrator) startTransitionB() {
	o.advance(PhaseTransitionB)
	o.w.Audio.PlayMusicTrack(o.stage.Music)
	o.w.Start(routine.NoOwner, slotStage, routine.NewSteps(
		func(c *routine.Context) routine.Wait { return routine.Seconds(o.stage.SideTransitionDuration) },
		func(c *routine.Context) routine.Wait {
			o.enterSide(PhaseWavesB)
			return routine.Done()
		},
	))
}

// startBossTransition Boss 房间揭示过场
//
// 固定的等待与卷轴加减速交替进行，总时长由配置决定。
func (o *Orchestrator) startBossTransition() {
	t := o.stage.Transition
	bg := o.background
	o.advance(PhaseBossTransition)
	o.w.HUD.SetBannerVisible(game.BannerWarning, true)
	log.Printf("[Orchestrator] Boss transition %.1fs (boost %.0f px/s)", t.Total(), t.BoostSpeed)

	o.w.Start(routine.NoOwner, slotStage, routine.NewChain(
		hold(t.HoldBefore),
		&scrollEase{bg: bg, sampleFrom: true, to: t.BoostSpeed, duration: t.Accelerate, ease: utils.EaseInCubic},
		hold(t.Cruise),
		&scrollEase{bg: bg, from: t.BoostSpeed, to: 0, duration: t.Decelerate, ease: utils.EaseOutCubic},
		hold(t.HoldAfter),
		routine.Func(func(c *routine.Context) routine.Wait {
			o.startBoss()
			return routine.Done()
		}),
	))
}

// hold 挂起 seconds 秒后结束的协程
func hold(seconds float64) routine.Routine {
	waited := false
	return routine.Func(func(c *routine.Context) routine.Wait {
		if waited {
			return routine.Done()
		}
		waited = true
		return routine.Seconds(seconds)
	})
}

func (o *Orchestrator) startBoss() {
	w := o.w
	w.HUD.SetBannerVisible(game.BannerWarning, false)
	boss, err := w.SpawnBoss(o.stage.Boss)
	if err != nil {
		log.Printf("[Orchestrator] Failed to spawn boss: %v", err)
		o.advance(PhaseBoss)
		o.endOfStage()
		return
	}
	o.beginFight(boss, 0)
	w.Audio.PlayMusicTrack(game.MusicBoss)
	o.advance(PhaseBoss)
}

func (o *Orchestrator) beginFight(boss behavior.Boss, timeLimit float64) {
	o.fight = NewBossFight(o.w, boss, timeLimit)
	o.w.ActiveBoss = boss
}

func (o *Orchestrator) endFight() {
	o.w.ActiveBoss = nil
}

// endOfStage 清除敌方子弹并开始结算
func (o *Orchestrator) endOfStage() {
	w := o.w
	for _, id := range w.Registry.Bullets() {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](w.EM, id)
		if ok && proj.Owner == components.FactionEnemy {
			w.Registry.UnregisterBullet(id)
		}
	}
	w.Audio.PlayMusicTrack(game.MusicStageClear)
	w.HUD.SetBannerVisible(game.BannerStageClear, true)
	o.advance(PhaseEndOfStage)

	o.bonus = NewBonusSequence(w, o.stage.Stage, o.finishStage)
	w.Start(routine.NoOwner, slotStage, o.bonus)
}

// finishStage 结算完成：最后一关进入通关，否则保存进度并加载下一关
func (o *Orchestrator) finishStage() {
	w := o.w
	w.HUD.SetBannerVisible(game.BannerStageClear, false)

	if w.LastStage(o.stage.Stage) {
		w.HUD.SetBannerVisible(game.BannerGameComplete, true)
		o.advance(PhaseGameComplete)
		o.submitScore()
		return
	}

	next := o.stage.Stage + 1
	if meta := w.Meta; meta != nil {
		meta.Score = w.Ledger.Score
		if pc := w.PlayerState(); pc != nil {
			meta.Lives = pc.Lives
			meta.Bombs = pc.Bombs
			meta.Power = pc.Power
			meta.SpeedLevel = pc.SpeedLevel
		}
		meta.Advance()
		next = meta.Stage
	}
	o.advance(PhaseStageComplete)
	if o.loader != nil {
		o.loader.LoadStage(next)
	}
}

// gameOver 残机耗尽，可以从任意阶段进入
func (o *Orchestrator) gameOver() {
	w := o.w
	w.Scheduler.CancelSlot(routine.NoOwner, slotStage)
	w.HUD.SetBannerVisible(game.BannerWarning, false)
	w.HUD.SetBannerVisible(game.BannerGameOver, true)
	w.Audio.PlayMusicTrack(game.MusicGameOver)
	o.endFight()
	o.advance(PhaseGameOver)
	o.submitScore()
}

func (o *Orchestrator) submitScore() {
	if o.store == nil {
		return
	}
	rank, err := game.SubmitScore(o.store, game.HighScoreRecord{
		Initials: o.Initials,
		Score:    o.w.Ledger.Score,
		Stage:    o.stage.Stage,
	})
	if err != nil {
		log.Printf("[Orchestrator] Failed to submit high score: %v", err)
	}
	o.rank = rank
	log.Printf("[Orchestrator] Final score %d, rank %d", o.w.Ledger.Score, rank)
}

// advance 切换阶段，只允许向前
func (o *Orchestrator) advance(p Phase) {
	utils.Invariant(p > o.phase, "stage phase cannot move from %s to %s", o.phase, p)
	log.Printf("[Orchestrator] Phase %s -> %s", o.phase, p)
	o.phase = p
}
