// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器端和
// 移动端共用。桌面端通过 cmd 入口调用 NewApp()，移动端通过
// mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/asteroids/internal/score"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/scenes"
	"github.com/decker502/asteroids/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 启动时直接进入全屏
	Fullscreen bool
	// Seed 非零时跳过主菜单，直接以该种子开局（用于复现对局）
	Seed int64
	// ShowFPS 在画面角落显示帧率指示
	ShowFPS bool
	// Store 得分持久化后端，由平台入口注入；nil 则本局成绩不落盘
	Store score.Store
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
//
// 渲染帧率随显示器走，模拟以固定步长推进：每帧把真实流逝时间累积
// 起来，攒够一个步长就推一个 tick，单帧最多补偿 MaxCatchUpSteps 个
// tick，再多的积压直接丢弃，宁可慢放也不追帧到失控
type App struct {
	sceneManager    *game.SceneManager
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	gameConfig      *config.GameConfig

	// 固定步长驱动
	clock       func() time.Time // 可注入的时钟（测试用）
	lastFrame   time.Time
	started     bool
	accumulator float64

	wasFocused bool
	verbose    bool

	// 退出全屏后需要等待几帧才能正确恢复窗口大小
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 游戏参数：嵌入的配置文件缺失或损坏时退回内置默认值
	gameConfig, err := config.LoadGameConfig("assets/config/game.yaml")
	if err != nil {
		log.Printf("[App] 游戏配置加载失败, 使用默认值: %v", err)
		gameConfig = config.Default()
	}

	// 音频上下文与资源管理器
	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if err := resourceManager.RequestGroup("core"); err != nil {
		return nil, fmt.Errorf("核心资源请求失败: %w", err)
	}

	// 设置持久化：gdata 在桌面写用户目录，在浏览器写 localStorage。
	// 打不开就进入降级模式，设置只在内存里生效
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] 存储目录准备失败: %v", err)
	}
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "asteroids"}); err != nil {
		log.Printf("[App] 设置存储不可用, 进入降级模式: %v", err)
	} else {
		gdataManager = m
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	// 场景管理器与工厂
	sceneManager := game.NewSceneManager()
	sceneManager.SetMenuSceneFactory(func() game.Scene {
		return scenes.NewMenuScene(sceneManager, audioManager, settingsManager, cfg.Store, gameConfig)
	})
	sceneManager.SetGameSceneFactory(func(seed int64) game.Scene {
		return scenes.NewGameScene(sceneManager, audioManager, cfg.Store, gameConfig, seed)
	})

	// 显示设置
	if cfg.ShowFPS {
		settingsManager.SetShowFPS(true)
	}
	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 起始场景：默认主菜单；指定种子则直接开局
	if cfg.Seed != 0 {
		log.Printf("[App] 指定种子 %d, 跳过主菜单", cfg.Seed)
		sceneManager.StartGame(cfg.Seed)
	} else {
		sceneManager.ReturnToMenu()
	}

	return &App{
		sceneManager:    sceneManager,
		resourceManager: resourceManager,
		settingsManager: settingsManager,
		gameConfig:      gameConfig,
		clock:           time.Now,
		wasFocused:      true,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 推进游戏逻辑
// 每个渲染帧调用一次，内部按固定步长驱动模拟
func (a *App) Update() error {
	a.updateWindowControls()

	if a.resourceManager != nil {
		a.resourceManager.Update()
	}

	// 失焦瞬间通知场景（对局场景借此自动暂停）
	focused := ebiten.IsFocused()
	if a.wasFocused && !focused {
		if p, ok := a.sceneManager.GetCurrentScene().(game.Pausable); ok {
			p.OnFocusLost()
		}
	}
	a.wasFocused = focused

	// 输入每帧采样一次，按下沿在追帧时也只算一次
	if sampler, ok := a.sceneManager.GetCurrentScene().(game.InputSampler); ok {
		sampler.SampleInput()
	}

	now := a.clock()
	if !a.started {
		a.started = true
		a.lastFrame = now
	}
	elapsed := now.Sub(a.lastFrame).Seconds()
	a.lastFrame = now
	if elapsed < 0 {
		elapsed = 0
	}
	a.accumulator += elapsed

	dt := a.gameConfig.Dt()
	ticks := 0
	for a.accumulator >= dt {
		if ticks >= a.gameConfig.Loop.MaxCatchUpSteps {
			// 长时间停顿后不追帧，把积压丢掉
			a.accumulator = 0
			break
		}
		a.sceneManager.Update(dt)
		a.accumulator -= dt
		ticks++
	}

	return nil
}

// updateWindowControls 处理 F11 全屏切换
func (a *App) updateWindowControls() {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧再设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		if a.settingsManager != nil {
			a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
			if err := a.settingsManager.Save(); err != nil {
				log.Printf("[App] 保存设置失败: %v", err)
			}
		}
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)

	if a.settingsManager != nil && a.settingsManager.GetSettings().ShowFPS {
		msg := fmt.Sprintf("FPS %0.1f", ebiten.ActualFPS())
		ebitenutil.DebugPrintAt(screen, msg, 4, config.GameWindowHeight-16)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
