package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/asteroids/internal/score"
	"github.com/decker502/asteroids/internal/shape"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

const (
	// waveBannerDuration 波次横幅的显示时间（秒）
	waveBannerDuration = 2.0
	// waveBannerFade 横幅结尾的淡出时长（秒）
	waveBannerFade = 0.5
	// livesGlyphSize 生命图标小飞船的尺寸（像素）
	livesGlyphSize = 7.0
)

// HUDSystem 绘制对局界面：比分、生命、波次与各阶段的覆盖层
//
// 文字用位图字体按需放大，和线框画风一致。
// 波次横幅由 WaveStartedEvent 触发；暂停与终局覆盖层按会话阶段绘制。
// 终局面板的排行榜数据由场景在结算后通过 SetGameOverInfo 注入。
type HUDSystem struct {
	config  *config.GameConfig
	session *game.Session
	face    text.Face

	banner      string
	bannerTimer float64

	topScores    []score.Entry
	newHighScore bool
}

// NewHUDSystem 创建 HUD 系统并订阅波次事件
func NewHUDSystem(cfg *config.GameConfig, session *game.Session) *HUDSystem {
	s := &HUDSystem{
		config:  cfg,
		session: session,
		face:    text.NewGoXFace(basicfont.Face7x13),
	}

	ecs.Subscribe(session.Bus(), func(e game.WaveStartedEvent) {
		s.banner = fmt.Sprintf("WAVE %d", e.Wave)
		s.bannerTimer = waveBannerDuration
	})

	return s
}

// SetGameOverInfo 注入终局面板的数据
func (s *HUDSystem) SetGameOverInfo(topScores []score.Entry, newHighScore bool) {
	s.topScores = topScores
	s.newHighScore = newHighScore
}

// Update 推进横幅倒计时
func (s *HUDSystem) Update(deltaTime float64) {
	if s.bannerTimer > 0 {
		s.bannerTimer -= deltaTime
	}
}

// Draw 绘制 HUD 与当前阶段的覆盖层
func (s *HUDSystem) Draw(screen *ebiten.Image) {
	s.drawScore(screen)
	s.drawLives(screen)
	s.drawWaveCounter(screen)

	if s.bannerTimer > 0 {
		fade := 1.0
		if s.bannerTimer < waveBannerFade {
			fade = utils.EaseOutQuad(s.bannerTimer / waveBannerFade)
		}
		s.drawCentered(screen, s.banner, s.config.Arena.Height*0.35, 3, fadeColor(strokeWhite, fade))
	}

	switch s.session.Phase() {
	case types.PhasePaused:
		s.drawPauseOverlay(screen)
	case types.PhaseGameOver:
		s.drawGameOverPanel(screen)
	}
}

func (s *HUDSystem) drawScore(screen *ebiten.Image) {
	s.drawText(screen, fmt.Sprintf("%08d", s.session.Score()), 16, 10, 2, strokeWhite)
}

// drawLives 把剩余生命画成一排小飞船
func (s *HUDSystem) drawLives(screen *ebiten.Image) {
	glyph := shape.Ship(livesGlyphSize)
	for i := 0; i < s.session.Lives(); i++ {
		x := 24 + float64(i)*20
		pts := glyph.Transformed(x, 52, 0, 1)
		for j := range pts {
			a := pts[j]
			b := pts[(j+1)%len(pts)]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y),
				float32(b.X), float32(b.Y), 1, strokeWhite, true)
		}
	}
}

func (s *HUDSystem) drawWaveCounter(screen *ebiten.Image) {
	str := fmt.Sprintf("WAVE %d", s.session.Wave())
	w := text.Advance(str, s.face) * 2
	s.drawText(screen, str, s.config.Arena.Width-w-16, 10, 2, strokeWhite)
}

func (s *HUDSystem) drawPauseOverlay(screen *ebiten.Image) {
	s.dimScreen(screen)
	s.drawCentered(screen, "PAUSED", s.config.Arena.Height*0.4, 4, strokeWhite)
	if utils.IsMobile() {
		s.drawCentered(screen, "TWO-FINGER TAP RESUMES", s.config.Arena.Height*0.55, 2, strokeGray)
	} else {
		s.drawCentered(screen, "ESC/P RESUME", s.config.Arena.Height*0.55, 2, strokeGray)
		s.drawCentered(screen, "-/+ VOLUME   M MUSIC   N SOUND", s.config.Arena.Height*0.62, 2, strokeGray)
	}
}

func (s *HUDSystem) drawGameOverPanel(screen *ebiten.Image) {
	s.dimScreen(screen)
	s.drawCentered(screen, "GAME OVER", s.config.Arena.Height*0.18, 4, strokeWhite)
	s.drawCentered(screen, fmt.Sprintf("FINAL SCORE %d", s.session.Score()),
		s.config.Arena.Height*0.3, 2, strokeWhite)
	if s.newHighScore {
		s.drawCentered(screen, "NEW HIGH SCORE!", s.config.Arena.Height*0.36, 2, beamGreen)
	}

	y := s.config.Arena.Height * 0.45
	for i, entry := range s.topScores {
		line := fmt.Sprintf("%2d. %8d  WAVE %d", i+1, entry.Score, entry.Wave)
		s.drawCentered(screen, line, y, 2, strokeGray)
		y += 22
	}

	prompt := "ENTER FOR MENU"
	if utils.IsMobile() {
		prompt = "TAP FOR MENU"
	}
	s.drawCentered(screen, prompt, s.config.Arena.Height*0.9, 2, strokeWhite)
}

// fadeColor 按系数整体衰减颜色（预乘透明度语义，四个通道一起缩放）
func fadeColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}

// dimScreen 给覆盖层垫一层半透明黑
func (s *HUDSystem) dimScreen(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0,
		float32(s.config.Arena.Width), float32(s.config.Arena.Height),
		color.RGBA{A: 0xb0}, false)
}

// drawText 在指定位置绘制放大的位图文字
func (s *HUDSystem) drawText(screen *ebiten.Image, str string, x, y, scale float64, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, s.face, op)
}

// drawCentered 水平居中绘制文字
func (s *HUDSystem) drawCentered(screen *ebiten.Image, str string, y, scale float64, col color.RGBA) {
	w := text.Advance(str, s.face) * scale
	s.drawText(screen, str, (s.config.Arena.Width-w)/2, y, scale, col)
}
