package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/stg/pkg/app"
	"github.com/gonewx/stg/pkg/config"
	"github.com/gonewx/stg/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	stage := flag.Int("stage", 1, "起始关卡")
	dataDir := flag.String("data", "", "从磁盘目录读取 data/（默认使用嵌入资源）")
	watch := flag.Bool("watch", false, "监听关卡配置并在修改后重新开始当前关卡（需要 --data）")
	mute := flag.Bool("mute", false, "静音启动")
	flag.Parse()

	if *dataDir != "" {
		if err := embedded.InitFromDir(*dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "数据目录无效: %v\n", err)
			os.Exit(1)
		}
	} else {
		embedded.Init(dataFS)
	}

	// 日志在非 verbose 模式下被丢弃，错误直接写到 stderr
	a, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Stage:   *stage,
		DataDir: *dataDir,
		Watch:   *watch,
		Mute:    *mute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("STG")
	ebiten.SetTPS(config.TickRate)
	ebiten.SetFullscreen(a.Settings().Settings().Fullscreen)

	runErr := ebiten.RunGame(a)
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}
