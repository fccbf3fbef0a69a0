package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/asteroids/internal/score"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/systems"
	"github.com/decker502/asteroids/pkg/types"
)

// volumeStep 暂停菜单音量键每帧的调整量
const volumeStep = 0.02

// GameScene represents a single run of the game.
// It owns the run's entity manager, session state and the full system
// pipeline, and is discarded wholesale when the player returns to the menu.
type GameScene struct {
	sceneManager *game.SceneManager
	audioManager *game.AudioManager // 可为 nil（无音频环境/测试）
	scoreStore   score.Store        // 可为 nil（无持久化环境/测试）
	config       *config.GameConfig

	// ECS 框架与本局状态
	entityManager *ecs.EntityManager
	session       *game.Session

	// 模拟系统，按 tick 内的执行顺序排列
	intentSystem      *systems.IntentSystem
	directorSystem    *systems.DirectorSystem
	shipControlSystem *systems.ShipControlSystem
	saucerAISystem    *systems.SaucerAISystem
	movementSystem    *systems.MovementSystem
	lifetimeSystem    *systems.LifetimeSystem
	collisionSystem   *systems.CollisionSystem
	resolverSystem    *systems.ResolverSystem
	explosionSystem   *systems.ExplosionSystem

	// 渲染系统
	renderSystem *systems.RenderSystem
	hudSystem    *systems.HUDSystem

	// 每帧采样一次的输入快照；按下沿被第一个消费的 tick 清除
	intents systems.Intents

	// 暂停菜单的音频调整键（仅键盘）
	volumeDelta float64
	toggleMusic bool
	toggleSound bool

	musicStarted bool
	finished     bool
}

// NewGameScene creates a new run with the given seed.
// The audio manager and score store may be nil; the run then plays
// silently and discards its final score.
func NewGameScene(sm *game.SceneManager, am *game.AudioManager, store score.Store,
	cfg *config.GameConfig, seed int64) *GameScene {

	em := ecs.NewEntityManager()
	session := game.NewSession(cfg.Ship.Lives, seed, nil)

	scene := &GameScene{
		sceneManager: sm,
		audioManager: am,
		scoreStore:   store,
		config:       cfg,

		entityManager: em,
		session:       session,

		intentSystem:      systems.NewIntentSystem(),
		directorSystem:    systems.NewDirectorSystem(em, cfg, session),
		shipControlSystem: systems.NewShipControlSystem(em, cfg, session.Bus()),
		saucerAISystem:    systems.NewSaucerAISystem(em, cfg, session),
		movementSystem:    systems.NewMovementSystem(em, cfg),
		lifetimeSystem:    systems.NewLifetimeSystem(em),
		collisionSystem:   systems.NewCollisionSystem(em, cfg),
		resolverSystem:    systems.NewResolverSystem(em, cfg, session),
		explosionSystem:   systems.NewExplosionSystem(em, cfg),

		renderSystem: systems.NewRenderSystem(em, cfg),
	}
	scene.hudSystem = systems.NewHUDSystem(cfg, session)

	if am != nil {
		am.AttachBus(session.Bus())
	}

	// 对局一开场就进入 Playing，首个 tick 由导演系统布置战场
	session.RequestTransition(types.PhasePlaying)
	session.ProcessTransitions()

	log.Printf("[GameScene] 新对局就绪, 种子: %d, 生命: %d", seed, cfg.Ship.Lives)
	return scene
}

// SampleInput 每帧采样一次输入快照
func (s *GameScene) SampleInput() {
	s.intents = s.intentSystem.Sample(int(s.config.Arena.Width), int(s.config.Arena.Height))

	// 暂停菜单的音频键
	s.volumeDelta = 0
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		s.volumeDelta -= volumeStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		s.volumeDelta += volumeStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleMusic = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.toggleSound = true
	}
}

// Update advances the run by one fixed simulation tick.
func (s *GameScene) Update(deltaTime float64) {
	// 上个 tick 排队的阶段切换在 tick 边界生效
	phase := s.session.ProcessTransitions()

	in := s.intents
	s.intents.Pause = false
	s.intents.Start = false

	switch phase {
	case types.PhasePlaying:
		s.updatePlaying(deltaTime, in)
	case types.PhasePaused:
		s.updatePaused(in)
	case types.PhaseGameOver:
		s.updateGameOver(deltaTime, in)
	}

	s.hudSystem.Update(deltaTime)
}

// updatePlaying 运行一个完整的模拟 tick
func (s *GameScene) updatePlaying(deltaTime float64, in systems.Intents) {
	if in.Pause {
		s.session.TogglePause()
		if s.audioManager != nil {
			s.audioManager.PauseMusic()
		}
		return
	}

	if !s.musicStarted && s.audioManager != nil {
		// 解码是异步的，启动成功前每 tick 重试
		s.musicStarted = s.audioManager.PlayMusic(game.MusicGame)
	}

	s.directorSystem.UpdateTimers(deltaTime)
	s.shipControlSystem.Update(deltaTime, in)
	s.saucerAISystem.Update(deltaTime)
	s.movementSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)

	pairs := s.collisionSystem.Detect()
	s.resolverSystem.Resolve(pairs)

	// 最后一条生命刚被裁决掉：跳过剩余系统，立即结算
	if s.session.HasPendingTransition(types.PhaseGameOver) {
		s.entityManager.Commit()
		s.session.ProcessTransitions()
		s.finishRun()
		return
	}

	s.directorSystem.UpdateCounts()
	s.explosionSystem.Update(deltaTime)
	s.entityManager.Commit()
}

// updatePaused 处理暂停菜单的输入
func (s *GameScene) updatePaused(in systems.Intents) {
	s.applyAudioKeys()

	if in.Pause {
		s.session.TogglePause()
		if s.audioManager != nil {
			s.audioManager.ResumeMusic()
			s.saveSettings()
		}
	}
}

// updateGameOver 结算画面：残余战场继续漂移，等待玩家返回菜单
func (s *GameScene) updateGameOver(deltaTime float64, in systems.Intents) {
	s.movementSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.explosionSystem.Update(deltaTime)
	s.entityManager.Commit()

	if in.Start {
		s.returnToMenu()
	}
}

// applyAudioKeys 应用暂停菜单中的音量与开关调整
func (s *GameScene) applyAudioKeys() {
	if s.audioManager == nil {
		s.volumeDelta, s.toggleMusic, s.toggleSound = 0, false, false
		return
	}

	sm := s.audioManager
	if s.volumeDelta != 0 {
		settings := s.settings()
		if settings != nil {
			sm.SetMusicVolume(clampVolume(settings.MusicVolume + s.volumeDelta))
			sm.SetSoundVolume(clampVolume(settings.SoundVolume + s.volumeDelta))
		}
		s.volumeDelta = 0
	}
	if s.toggleMusic {
		s.toggleMusic = false
		if settings := s.settings(); settings != nil {
			enabled := !settings.MusicEnabled
			s.settingsManager().SetMusicEnabled(enabled)
			if !enabled {
				sm.StopMusic()
				s.musicStarted = false
			}
			s.saveSettings()
		}
	}
	if s.toggleSound {
		s.toggleSound = false
		if settings := s.settings(); settings != nil {
			s.settingsManager().SetSoundEnabled(!settings.SoundEnabled)
			s.saveSettings()
		}
	}
}

// finishRun 保存得分并把 HUD 切到结算面板
func (s *GameScene) finishRun() {
	if s.finished {
		return
	}
	s.finished = true

	finalScore := s.session.Score()
	wave := s.session.Wave()

	var (
		top     []score.Entry
		newHigh bool
		high    = finalScore
	)
	if s.scoreStore != nil {
		prev, err := s.scoreStore.HighScore()
		if err != nil {
			log.Printf("[GameScene] 读取最高分失败: %v", err)
		}
		newHigh = finalScore > 0 && finalScore > prev
		if prev > high {
			high = prev
		}

		if _, err := s.scoreStore.SaveScore(finalScore, wave); err != nil {
			log.Printf("[GameScene] 保存得分失败: %v", err)
		}
		if entries, err := s.scoreStore.TopScores(score.DefaultTopLimit); err != nil {
			log.Printf("[GameScene] 读取排行榜失败: %v", err)
		} else {
			top = entries
		}
	}

	s.hudSystem.SetGameOverInfo(top, newHigh)
	ecs.Publish(s.session.Bus(), game.GameOverEvent{
		Score:     finalScore,
		Wave:      wave,
		HighScore: high,
	})

	if s.audioManager != nil {
		s.audioManager.StopMusic()
	}
	log.Printf("[GameScene] 对局结束: 得分 %d, 波次 %d, 新纪录: %v", finalScore, wave, newHigh)
}

// returnToMenu 清理本局订阅并切回主菜单
func (s *GameScene) returnToMenu() {
	s.session.Bus().Clear()
	if s.audioManager != nil {
		s.audioManager.StopMusic()
	}
	s.sceneManager.ReturnToMenu()
}

// OnFocusLost 窗口失焦时自动暂停，避免玩家切出窗口时被击毁
func (s *GameScene) OnFocusLost() {
	if s.session.Phase() == types.PhasePlaying {
		s.session.TogglePause()
		if s.audioManager != nil {
			s.audioManager.PauseMusic()
		}
	}
}

// Draw renders the battlefield and the HUD overlay.
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen)
	s.hudSystem.Draw(screen)
}

// settings 返回当前设置；无设置管理器时返回 nil
func (s *GameScene) settings() *game.GameSettings {
	if mgr := s.settingsManager(); mgr != nil {
		return mgr.GetSettings()
	}
	return nil
}

// settingsManager 返回音频管理器挂接的设置管理器
func (s *GameScene) settingsManager() *game.SettingsManager {
	if s.audioManager == nil {
		return nil
	}
	return s.audioManager.Settings()
}

// saveSettings 把设置改动落盘；失败只记录日志
func (s *GameScene) saveSettings() {
	if mgr := s.settingsManager(); mgr != nil {
		if err := mgr.Save(); err != nil {
			log.Printf("[GameScene] 保存设置失败: %v", err)
		}
	}
}

// clampVolume 把音量限制在 [0, 1]
func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
