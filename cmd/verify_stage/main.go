// verify_stage 无界面地运行一个关卡，打印阶段切换与结算结果
//
// 用法:
//
//	go run ./cmd/verify_stage --stage 1 --verbose
//
// 输入由脚本生成：一直按住射击，上下往返移动，Boss 出现后每隔几秒扔一颗炸弹。
// 同样的参数总是得到同样的结果。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/embedded"
	"github.com/gonewx/stg/pkg/game"
	"github.com/gonewx/stg/pkg/stage"
)

var (
	stageFlag = flag.Int("stage", 1, "要运行的关卡")
	dataDir   = flag.String("data", ".", "包含 data/ 的目录")
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	maxTime   = flag.Float64("max-seconds", 600, "模拟时长上限（秒）")
	noBombs   = flag.Bool("no-bombs", false, "不使用炸弹")
)

// sweepPeriod 上下往返一次的帧数
const sweepPeriod = 240

// bombInterval Boss 战中扔炸弹的间隔（帧）
const bombInterval = 300

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := embedded.InitFromDir(*dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	gameCfg, err := config.LoadGameConfig(config.GameConfigPath)
	if err != nil {
		return err
	}
	stats, err := config.LoadArchetypeStats(config.ArchetypeStatsPath)
	if err != nil {
		return err
	}
	stageCfg, err := config.LoadStageConfig(config.StagePath(*stageFlag))
	if err != nil {
		return err
	}

	hud := game.NewRecordingHUD()
	loader := &game.RecordingStageLoader{}
	store := game.NewHighScoreManager(nil)
	session := stage.NewSession(stage.Options{
		Config: gameCfg,
		Stats:  stats,
		Stage:  stageCfg,
		Ledger: game.NewScoreLedger(0),
		HUD:    hud,
		Loader: loader,
		Store:  store,
	})

	dt := 1.0 / config.TickRate
	maxTicks := int(*maxTime * config.TickRate)
	last := session.Phase()
	fmt.Printf("stage %d (%s)\n", stageCfg.Stage, stageCfg.Name)
	fmt.Printf("%8.2fs  %s\n", 0.0, last)

	tick := 0
	for ; tick < maxTicks && !session.Finished(); tick++ {
		session.Tick(dt, script(tick, session))
		// 每帧检查注册表里没有残留已销毁的实体，违反时直接 panic
		session.World.Registry.CheckConsistency()
		if p := session.Phase(); p != last {
			fmt.Printf("%8.2fs  %s\n", float64(tick+1)*dt, p)
			last = p
		}
	}

	ledger := session.World.Ledger
	fmt.Println()
	if !session.Finished() {
		fmt.Printf("stopped after %.0fs in phase %s\n", *maxTime, last)
	}
	fmt.Printf("score     %s\n", ledger.ScoreText())
	fmt.Printf("shots     %d\n", ledger.ShotsFired)
	fmt.Printf("hits      %d (%.1f%%)\n", ledger.Hits, ledger.Accuracy()*100)
	fmt.Printf("kills     %d\n", ledger.Kills)
	fmt.Printf("life lost %v  bomb used %v\n", ledger.LifeUsed, ledger.BombUsed)
	if b := session.Orchestrator.Bonus(); b != nil {
		bonuses := b.Bonuses()
		fmt.Printf("bonus     clear %d  accuracy %d  damage %d  perfect %v  no-miss %v  no-bombs %v\n",
			bonuses.Clear, bonuses.Accuracy, bonuses.Damage, bonuses.PerfectAim, bonuses.NoMiss, bonuses.NoBombs)
	}
	if len(loader.Loaded) > 0 {
		fmt.Printf("next      stage %d\n", loader.Loaded[len(loader.Loaded)-1])
	}
	if rank := session.Orchestrator.Rank(); rank >= 0 {
		fmt.Printf("rank      %d\n", rank+1)
	}
	return nil
}

// script 第 tick 帧的输入
func script(tick int, s *stage.Session) game.Signals {
	in := game.Signals{A: game.Hold()}
	if tick%sweepPeriod < sweepPeriod/2 {
		in.Up = game.Hold()
	} else {
		in.Down = game.Hold()
	}
	if !*noBombs && s.Phase() == stage.PhaseBoss && tick%bombInterval == 0 {
		in.B = game.Press()
	}
	return in
}
