//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
// 构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.asteroids -o build/android/asteroids.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Asteroids.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/asteroids/assets"
	"github.com/decker502/asteroids/internal/score"
	"github.com/decker502/asteroids/pkg/app"
	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/utils"
)

func init() {
	embedded.Init(assets.FS)

	// 先把应用沙箱里的配置目录建好，排行榜和设置的 gdata 才能落到可写位置
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("存储目录初始化失败: %v", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("存储目录: %s", path)
	}

	// 移动端没有命令行和 SQLite 路径可配，排行榜走 gdata 键值存储
	m, err := gdata.Open(gdata.Config{AppName: "asteroids"})
	if err != nil {
		log.Printf("排行榜存储不可用: %v", err)
		m = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose: true, // 便于在设备日志中定位问题
		Store:   score.NewGdataStore(m),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
