package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameSceneFactory 对局场景工厂函数类型
// seed 用于派生本局模拟的随机序列，避免场景包与游戏包循环依赖
type GameSceneFactory func(seed int64) Scene

// MenuSceneFactory 主菜单场景工厂函数类型
type MenuSceneFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	gameFactory  GameSceneFactory
	menuFactory  MenuSceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetGameSceneFactory 设置对局场景工厂函数
func (sm *SceneManager) SetGameSceneFactory(factory GameSceneFactory) {
	sm.gameFactory = factory
}

// SetMenuSceneFactory 设置主菜单场景工厂函数
func (sm *SceneManager) SetMenuSceneFactory(factory MenuSceneFactory) {
	sm.menuFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
// 如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// StartGame 创建并切换到新的对局场景
// seed: 本局随机种子，相同种子产生相同的陨石布局
func (sm *SceneManager) StartGame(seed int64) {
	log.Printf("[SceneManager] 开始新对局, 种子: %d", seed)

	if sm.gameFactory == nil {
		log.Printf("[SceneManager] 错误: GameSceneFactory 未设置")
		return
	}

	newScene := sm.gameFactory(seed)
	if newScene != nil {
		sm.SwitchTo(newScene)
	} else {
		log.Printf("[SceneManager] 错误: 无法创建对局场景")
	}
}

// ReturnToMenu 创建并切换到主菜单场景
func (sm *SceneManager) ReturnToMenu() {
	log.Printf("[SceneManager] 返回主菜单")

	if sm.menuFactory == nil {
		log.Printf("[SceneManager] 错误: MenuSceneFactory 未设置")
		return
	}

	newScene := sm.menuFactory()
	if newScene != nil {
		sm.SwitchTo(newScene)
	} else {
		log.Printf("[SceneManager] 错误: 无法创建主菜单场景")
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
