// 桌面端与浏览器端共用的简易入口：双击或 go run 直接开玩。
// 需要命令行参数（种子复现、排行榜管理、性能剖析）时用 cmd/asteroids。
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/asteroids/assets"
	"github.com/decker502/asteroids/pkg/app"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/embedded"
)

func main() {
	embedded.Init(assets.FS)

	store := openScoreStore()
	if store != nil {
		defer store.Close()
	}

	gameApp, err := app.NewApp(app.Config{Store: store})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
