package stage

import (
	"log"
	"math"
	"strconv"

	"github.com/gonewx/stg/pkg/behavior"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/routine"
	"github.com/gonewx/stg/pkg/utils"
)

// Bonuses 关卡结算的各项奖励
type Bonuses struct {
	Clear    int // 关卡 × ClearPerStage
	Accuracy int // round(命中/射击, 2) × AccuracyScale
	Damage   int // 击杀数 × DamagePerKill

	AccuracyRate float64

	PerfectAim bool // 命中率 100%
	NoMiss     bool // 没有损失生命
	NoBombs    bool // 没有使用炸弹
}

// ComputeBonuses 根据账本计算结算奖励
func ComputeBonuses(stage int, ledger *game.ScoreLedger, cfg config.BonusConfig) Bonuses {
	rate := ledger.Accuracy()
	return Bonuses{
		Clear:        stage * cfg.ClearPerStage,
		Accuracy:     int(math.Round(rate * float64(cfg.AccuracyScale))),
		Damage:       ledger.Kills * cfg.DamagePerKill,
		AccuracyRate: rate,
		PerfectAim:   ledger.ShotsFired > 0 && rate >= 1,
		NoMiss:       !ledger.LifeUsed,
		NoBombs:      !ledger.BombUsed,
	}
}

type bonusState int

const (
	bonusShow bonusState = iota
	bonusDrain
	bonusSpecials
	bonusHold
	bonusDone
)

type bonusCounter struct {
	name      string
	remaining int
}

// BonusSequence 关卡结算序列
//
// 三项奖励依次以 DrainStep 为单位逐帧转入分数，每次都回调 HUD；
// 然后依次显示获得的特别奖励横幅（各 SpecialDuration 秒），
// 停留 HoldAfter 秒后调用 onDone。
type BonusSequence struct {
	w       *behavior.World
	cfg     config.BonusConfig
	bonuses Bonuses
	onDone  func()

	state    bonusState
	counters []bonusCounter
	current  int
	specials []string
	special  int
	bannerOn bool
}

// NewBonusSequence 创建结算序列
func NewBonusSequence(w *behavior.World, stage int, onDone func()) *BonusSequence {
	cfg := w.Config.Bonus
	b := ComputeBonuses(stage, w.Ledger, cfg)
	seq := &BonusSequence{
		w:       w,
		cfg:     cfg,
		bonuses: b,
		onDone:  onDone,
		counters: []bonusCounter{
			{name: game.BonusClear, remaining: b.Clear},
			{name: game.BonusAccuracy, remaining: b.Accuracy},
			{name: game.BonusDamage, remaining: b.Damage},
		},
	}
	if b.PerfectAim {
		seq.specials = append(seq.specials, game.BannerPerfectAim)
	}
	if b.NoMiss {
		seq.specials = append(seq.specials, game.BannerNoMiss)
	}
	if b.NoBombs {
		seq.specials = append(seq.specials, game.BannerNoBombs)
	}
	log.Printf("[BonusSequence] clear=%d accuracy=%d (%s) damage=%d specials=%v",
		b.Clear, b.Accuracy, utils.FormatPercent(b.AccuracyRate), b.Damage, seq.specials)
	return seq
}

// Bonuses 本次结算的奖励
func (s *BonusSequence) Bonuses() Bonuses { return s.bonuses }

// Done 结算是否已完成
func (s *BonusSequence) Done() bool { return s.state == bonusDone }

// Resume 实现 routine.Routine
func (s *BonusSequence) Resume(c *routine.Context) routine.Wait {
	hud := s.w.HUD
	for {
		switch s.state {
		case bonusShow:
			for _, ctr := range s.counters {
				hud.UpdateBonusDisplay(ctr.name, strconv.Itoa(ctr.remaining))
			}
			hud.UpdateBonusDisplay(game.BonusAccuracyRate, utils.FormatPercent(s.bonuses.AccuracyRate))
			s.state = bonusDrain
			return routine.Tick()

		case bonusDrain:
			if s.current >= len(s.counters) {
				s.state = bonusSpecials
				continue
			}
			ctr := &s.counters[s.current]
			if ctr.remaining == 0 {
				s.current++
				continue
			}
			step := min(s.cfg.DrainStep, ctr.remaining)
			ctr.remaining -= step
			s.w.Ledger.AddRaw(step)
			hud.UpdateBonusDisplay(ctr.name, strconv.Itoa(ctr.remaining))
			hud.UpdateScoreDisplay(s.w.Ledger.ScoreText())
			s.w.Audio.PlaySoundEffect(game.SoundBonusTick)
			return routine.Tick()

		case bonusSpecials:
			if s.bannerOn {
				hud.SetBannerVisible(s.specials[s.special], false)
				s.bannerOn = false
				s.special++
			}
			if s.special >= len(s.specials) {
				s.state = bonusHold
				continue
			}
			hud.SetBannerVisible(s.specials[s.special], true)
			s.bannerOn = true
			s.w.Ledger.AddRaw(s.cfg.Special)
			hud.UpdateScoreDisplay(s.w.Ledger.ScoreText())
			return routine.Seconds(s.cfg.SpecialDuration)

		case bonusHold:
			s.state = bonusDone
			return routine.Seconds(s.cfg.HoldAfter)

		default:
			if s.onDone != nil {
				s.onDone()
			}
			return routine.Done()
		}
	}
}
