package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/asteroids/internal/shape"
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

// 线框配色：黑底白线，碎片与特效用暗一档的灰
var (
	strokeWhite = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	strokeGray  = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
	beamGreen   = color.RGBA{R: 0x60, G: 0xff, B: 0x80, A: 0xff}
)

const (
	strokeWidth = 1.5
	// invulnBlinkPeriod 出生保护期的闪烁周期（秒）
	invulnBlinkPeriod = 0.25
	// thrustFlickerFrames 尾焰隔帧闪动的周期（帧）
	thrustFlickerFrames = 3
)

// RenderSystem 绘制游戏世界的全部实体
//
// 所有实体都是黑底上的矢量线框：轮廓实体（飞船、陨石、飞碟、碎片）
// 按 Transform 旋转平移后用线段描边，子弹和道具用圆。
// 靠近战场边缘的实体在对边画镜像副本，穿越边界时不会闪现。
//
// 只负责世界实体；比分、生命数等界面元素由 HUDSystem 绘制。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	frame         int
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.GameConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Draw 按图层顺序绘制所有实体
// 顺序（从底到顶）：碎片 → 道具 → 陨石 → 飞碟与光束 → 子弹 → 飞船 → 爆炸
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.frame++

	s.drawDebris(screen)
	s.drawPowerUps(screen)
	s.drawAsteroids(screen)
	s.drawSaucers(screen)
	s.drawBullets(screen)
	s.drawShips(screen)
	s.drawExplosions(screen)
}

func (s *RenderSystem) drawDebris(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.DebrisComponent,
		*components.TransformComponent, *components.OutlineComponent](s.entityManager) {
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		outline := ecs.MustComponent[*components.OutlineComponent](s.entityManager, id)

		col := strokeGray
		// 寿命后半段淡出，前段亮度保持、尾段加速变暗
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
			if frac := lifetime.CurrentLifetime / lifetime.MaxLifetime; frac > 0.5 {
				col = fade(col, utils.EaseInQuad(2*(1-frac)))
			}
		}
		s.strokeWrapped(screen, outline.Points, tf, outline.Scale, col)
	}
}

func (s *RenderSystem) drawPowerUps(screen *ebiten.Image) {
	r := float32(s.config.PowerUps.Radius)
	for _, id := range ecs.GetEntitiesWith2[*components.PowerUpComponent,
		*components.TransformComponent](s.entityManager) {
		pu := ecs.MustComponent[*components.PowerUpComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)

		// 呼吸脉动让道具在一堆碎石里显眼
		pulse := float32(1 + 0.15*math.Sin(float64(s.frame)*0.12))
		for _, dx := range s.ghostOffsets(tf.X, float64(r), s.config.Arena.Width) {
			for _, dy := range s.ghostOffsets(tf.Y, float64(r), s.config.Arena.Height) {
				x := float32(tf.X + dx)
				y := float32(tf.Y + dy)
				vector.StrokeCircle(screen, x, y, r*pulse, strokeWidth, strokeWhite, true)
				s.drawPowerUpGlyph(screen, pu.Kind, x, y, r)
			}
		}
	}
}

// drawPowerUpGlyph 在道具圆圈内画种类记号：加命画十字，双管画两道竖线
func (s *RenderSystem) drawPowerUpGlyph(screen *ebiten.Image, kind types.PowerUpKind, x, y, r float32) {
	inner := r * 0.5
	switch kind {
	case types.PowerUpExtraLife:
		vector.StrokeLine(screen, x-inner, y, x+inner, y, strokeWidth, strokeWhite, true)
		vector.StrokeLine(screen, x, y-inner, x, y+inner, strokeWidth, strokeWhite, true)
	case types.PowerUpTwinShot:
		vector.StrokeLine(screen, x-inner*0.5, y-inner, x-inner*0.5, y+inner, strokeWidth, strokeWhite, true)
		vector.StrokeLine(screen, x+inner*0.5, y-inner, x+inner*0.5, y+inner, strokeWidth, strokeWhite, true)
	}
}

func (s *RenderSystem) drawAsteroids(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.AsteroidComponent,
		*components.TransformComponent, *components.OutlineComponent](s.entityManager) {
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		outline := ecs.MustComponent[*components.OutlineComponent](s.entityManager, id)
		s.strokeWrapped(screen, outline.Points, tf, outline.Scale, strokeWhite)
	}
}

func (s *RenderSystem) drawSaucers(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.SaucerComponent,
		*components.TransformComponent, *components.OutlineComponent](s.entityManager) {
		saucer := ecs.MustComponent[*components.SaucerComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		outline := ecs.MustComponent[*components.OutlineComponent](s.entityManager, id)

		// 飞碟不随速度旋转，轮廓保持水平
		s.strokeWrapped(screen, outline.Points,
			&components.TransformComponent{X: tf.X, Y: tf.Y}, outline.Scale, strokeWhite)
		s.drawBeamFlash(screen, saucer, tf)
	}
}

// drawBeamFlash 投掷后的光束残影：飞碟到目标陨石的连线
func (s *RenderSystem) drawBeamFlash(screen *ebiten.Image, saucer *components.SaucerComponent,
	tf *components.TransformComponent) {
	if saucer.BeamFlash <= 0 || saucer.BeamTarget == ecs.InvalidEntity {
		return
	}
	targetTF, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, saucer.BeamTarget)
	if !ok {
		return
	}
	// 目标取最近镜像，光束跨边界时不画满屏长线
	endX := tf.X + utils.WrappedDelta(tf.X, targetTF.X, s.config.Arena.Width)
	endY := tf.Y + utils.WrappedDelta(tf.Y, targetTF.Y, s.config.Arena.Height)
	col := fade(beamGreen, saucer.BeamFlash/beamFlashDuration)
	vector.StrokeLine(screen, float32(tf.X), float32(tf.Y),
		float32(endX), float32(endY), strokeWidth*2, col, true)
}

func (s *RenderSystem) drawBullets(screen *ebiten.Image) {
	r := float32(s.config.Bullet.Radius)
	for _, id := range ecs.GetEntitiesWith2[*components.BulletComponent,
		*components.TransformComponent](s.entityManager) {
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		for _, dx := range s.ghostOffsets(tf.X, float64(r), s.config.Arena.Width) {
			for _, dy := range s.ghostOffsets(tf.Y, float64(r), s.config.Arena.Height) {
				vector.DrawFilledCircle(screen,
					float32(tf.X+dx), float32(tf.Y+dy), r, strokeWhite, true)
			}
		}
	}
}

func (s *RenderSystem) drawShips(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.ShipComponent,
		*components.TransformComponent, *components.OutlineComponent](s.entityManager) {
		ship := ecs.MustComponent[*components.ShipComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		outline := ecs.MustComponent[*components.OutlineComponent](s.entityManager, id)

		col := strokeWhite
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok &&
			health.Invulnerable() {
			// 出生保护闪烁：半周期实线，半周期淡线
			if math.Mod(health.InvulnRemaining, invulnBlinkPeriod) < invulnBlinkPeriod/2 {
				col = fade(col, 0.35)
			}
		}
		s.strokeWrapped(screen, outline.Points, tf, outline.Scale, col)

		if ship.Thrusting && s.frame%thrustFlickerFrames != 0 {
			flame := shape.Thruster(s.config.Ship.Size)
			s.strokeWrapped(screen, flame, tf, outline.Scale, col)
		}
	}
}

func (s *RenderSystem) drawExplosions(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ExplosionComponent,
		*components.TransformComponent](s.entityManager) {
		explosion := ecs.MustComponent[*components.ExplosionComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)

		life := 1 - explosion.Age/explosion.Duration
		if life <= 0 {
			continue
		}
		vector.StrokeCircle(screen, float32(tf.X), float32(tf.Y),
			float32(explosion.Radius), strokeWidth,
			fade(strokeWhite, utils.EaseOutQuad(life)), true)
	}
}

// strokeWrapped 描边一个轮廓，并在靠近边缘时补画对边的镜像副本
func (s *RenderSystem) strokeWrapped(screen *ebiten.Image, outline shape.Outline,
	tf *components.TransformComponent, scale float64, col color.RGBA) {
	if len(outline) < 2 {
		return
	}
	radius := outline.MaxRadius() * scale
	for _, dx := range s.ghostOffsets(tf.X, radius, s.config.Arena.Width) {
		for _, dy := range s.ghostOffsets(tf.Y, radius, s.config.Arena.Height) {
			pts := outline.Transformed(tf.X+dx, tf.Y+dy, tf.Rotation, scale)
			s.strokePolygon(screen, pts, col)
		}
	}
}

// strokePolygon 把闭合多边形按线段描边
func (s *RenderSystem) strokePolygon(screen *ebiten.Image, pts shape.Outline, col color.RGBA) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y),
			float32(b.X), float32(b.Y), strokeWidth, col, true)
	}
}

// ghostOffsets 返回该轴需要绘制的平移偏移
// 实体与边缘的距离小于自身半径时，在对边补一个镜像副本
func (s *RenderSystem) ghostOffsets(v, radius, size float64) []float64 {
	offsets := []float64{0}
	if v < radius {
		offsets = append(offsets, size)
	}
	if v > size-radius {
		offsets = append(offsets, -size)
	}
	return offsets
}

// fade 按比例压暗颜色（预乘 alpha）
func fade(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
