package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/asteroids/internal/score"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/systems"
	"github.com/decker502/asteroids/pkg/utils"
)

const (
	// menuTopLimit 主菜单排行榜显示的条目数
	menuTopLimit = 5
	// blinkPeriod 开始提示的闪烁周期（秒）
	blinkPeriod = 1.0
	// titleEntrance 标题滑入动画的时长（秒）
	titleEntrance = 0.8
)

// MenuScene represents the title screen.
// Behind the menu text an attract field of asteroids drifts and wraps,
// driven by the same simulation systems the real game uses.
type MenuScene struct {
	sceneManager    *game.SceneManager
	audioManager    *game.AudioManager    // 可为 nil
	settingsManager *game.SettingsManager // 可为 nil
	scoreStore      score.Store           // 可为 nil
	config          *config.GameConfig

	// 吸引模式战场
	entityManager  *ecs.EntityManager
	session        *game.Session
	directorSystem *systems.DirectorSystem
	movementSystem *systems.MovementSystem
	renderSystem   *systems.RenderSystem

	intentSystem *systems.IntentSystem
	intents      systems.Intents
	toggleMusic  bool
	toggleSound  bool

	face      text.Face
	topScores []score.Entry
	highScore int
	elapsed   float64

	musicStarted bool
}

// NewMenuScene creates the title screen and seeds its attract field.
func NewMenuScene(sm *game.SceneManager, am *game.AudioManager,
	settings *game.SettingsManager, store score.Store, cfg *config.GameConfig) *MenuScene {

	em := ecs.NewEntityManager()
	session := game.NewSession(0, time.Now().UnixNano(), nil)

	scene := &MenuScene{
		sceneManager:    sm,
		audioManager:    am,
		settingsManager: settings,
		scoreStore:      store,
		config:          cfg,

		entityManager:  em,
		session:        session,
		directorSystem: systems.NewDirectorSystem(em, cfg, session),
		movementSystem: systems.NewMovementSystem(em, cfg),
		renderSystem:   systems.NewRenderSystem(em, cfg),

		intentSystem: systems.NewIntentSystem(),
		face:         text.NewGoXFace(basicfont.Face7x13),
	}

	scene.reloadScores()

	log.Printf("[MenuScene] 主菜单就绪, 最高分: %d", scene.highScore)
	return scene
}

// reloadScores 读取排行榜缓存到场景
func (s *MenuScene) reloadScores() {
	if s.scoreStore == nil {
		return
	}
	if entries, err := s.scoreStore.TopScores(menuTopLimit); err != nil {
		log.Printf("[MenuScene] 读取排行榜失败: %v", err)
	} else {
		s.topScores = entries
	}
	if high, err := s.scoreStore.HighScore(); err == nil {
		s.highScore = high
	}
}

// SampleInput 每帧采样一次输入快照
func (s *MenuScene) SampleInput() {
	s.intents = s.intentSystem.Sample(int(s.config.Arena.Width), int(s.config.Arena.Height))

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleMusic = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.toggleSound = true
	}
}

// Update drives the attract field and waits for the start intent.
func (s *MenuScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	// 吸引模式：维持一小片漂移陨石
	s.directorSystem.UpdateAttract(deltaTime)
	s.movementSystem.Update(deltaTime)
	s.entityManager.Commit()

	if !s.musicStarted && s.audioManager != nil {
		s.musicStarted = s.audioManager.PlayMusic(game.MusicMenu)
	}

	s.applyToggles()

	if s.intents.Start {
		s.intents.Start = false
		s.startGame()
	}
}

// applyToggles 处理菜单上的音频开关键
func (s *MenuScene) applyToggles() {
	if s.toggleMusic {
		s.toggleMusic = false
		if s.settingsManager != nil {
			enabled := !s.settingsManager.GetSettings().MusicEnabled
			s.settingsManager.SetMusicEnabled(enabled)
			if s.audioManager != nil {
				if enabled {
					s.musicStarted = false // 下一帧重新启动
				} else {
					s.audioManager.StopMusic()
				}
			}
			s.saveSettings()
		}
	}
	if s.toggleSound {
		s.toggleSound = false
		if s.settingsManager != nil {
			s.settingsManager.SetSoundEnabled(!s.settingsManager.GetSettings().SoundEnabled)
			s.saveSettings()
		}
	}
}

// startGame 结束菜单并开始新对局
func (s *MenuScene) startGame() {
	if s.audioManager != nil {
		s.audioManager.PlaySound(game.SoundMenuSelect)
		s.audioManager.StopMusic()
	}
	s.session.Bus().Clear()
	s.sceneManager.StartGame(time.Now().UnixNano())
}

// saveSettings 把设置改动落盘；失败只记录日志
func (s *MenuScene) saveSettings() {
	if s.settingsManager == nil {
		return
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[MenuScene] 保存设置失败: %v", err)
	}
}

// Draw renders the attract field with the menu text on top.
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen)

	w := s.config.Arena.Width
	h := s.config.Arena.Height
	white := color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	gray := color.RGBA{0x90, 0x90, 0x90, 0xff}

	// 标题从屏幕上方滑入停在最终位置
	titleY := h * 0.22
	if s.elapsed < titleEntrance {
		titleY = h * (0.04 + 0.18*utils.EaseOutCubic(s.elapsed/titleEntrance))
	}
	s.drawCentered(screen, "ASTEROIDS", w/2, titleY, 6, white)

	if utils.PulseWave(s.elapsed, blinkPeriod) > 0.25 {
		s.drawCentered(screen, "PRESS ENTER OR TAP TO START", w/2, h*0.45, 2, white)
	}

	if utils.IsMobile() {
		s.drawCentered(screen, "LEFT STICK STEERS   LOWER RIGHT FIRES   TWO FINGERS PAUSE", w/2, h*0.58, 1.5, gray)
	} else {
		s.drawCentered(screen, "W THRUST   A/D TURN   SPACE FIRE   ESC PAUSE", w/2, h*0.56, 1.5, gray)
		s.drawCentered(screen, "TOUCH: LEFT STICK STEERS, LOWER RIGHT FIRES", w/2, h*0.60, 1.5, gray)
	}

	if len(s.topScores) > 0 {
		s.drawCentered(screen, "HIGH SCORES", w/2, h*0.68, 2, white)
		y := h * 0.73
		for i, entry := range s.topScores {
			line := fmt.Sprintf("%d. %8d  WAVE %d", i+1, entry.Score, entry.Wave)
			s.drawCentered(screen, line, w/2, y, 1.5, gray)
			y += 18
		}
	}

	// 移动端没有键盘，设置开关行没有意义
	if !utils.IsMobile() {
		s.drawCentered(screen, s.settingsLine(), w/2, h*0.95, 1.5, gray)
	}
}

// settingsLine 返回底部设置状态行
func (s *MenuScene) settingsLine() string {
	music, sound := "ON", "ON"
	if s.settingsManager != nil {
		st := s.settingsManager.GetSettings()
		if !st.MusicEnabled {
			music = "OFF"
		}
		if !st.SoundEnabled {
			sound = "OFF"
		}
	}
	return fmt.Sprintf("M MUSIC: %s   N SOUND: %s   F11 FULLSCREEN", music, sound)
}

// drawCentered 以 (cx, cy) 为中心绘制一行文本
func (s *MenuScene) drawCentered(screen *ebiten.Image, str string, cx, cy, scale float64, col color.Color) {
	width := text.Advance(str, s.face) * scale
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-width/2, cy)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, s.face, op)
}
