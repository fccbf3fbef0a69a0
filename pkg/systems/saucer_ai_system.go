package systems

import (
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/utils"
)

const (
	// saucerAvoidGain 躲避分量相对追踪分量的权重
	saucerAvoidGain = 1.5
	// saucerLateralRetention 横向速度的每秒保留系数
	// 压掉与追踪方向垂直的速度分量，飞碟的航迹才像在"瞄着"玩家飞
	saucerLateralRetention = 0.25
	// beamFlashDuration 投掷后光束线的残留显示时间（秒）
	beamFlashDuration = 0.25
)

// SaucerAISystem 驱动飞碟的移动与牵引光束
//
// 移动：追踪玩家 + 躲避近处陨石，加速度与速度都有上限；
// 光束：蓄力结束后抓取一颗范围内且离玩家不太近的陨石甩向玩家，
// 然后进入随机时长的冷却。位置积分交给运动系统，这里只改速度。
type SaucerAISystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	session       *game.Session
	bus           *ecs.EventBus
}

// NewSaucerAISystem 创建飞碟AI系统
func NewSaucerAISystem(em *ecs.EntityManager, cfg *config.GameConfig, session *game.Session) *SaucerAISystem {
	return &SaucerAISystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		bus:           session.Bus(),
	}
}

// Update 推进所有飞碟的转向与光束状态
func (s *SaucerAISystem) Update(deltaTime float64) {
	px, py, hasPlayer := s.findPlayer()

	for _, id := range ecs.GetEntitiesWith3[*components.SaucerComponent,
		*components.TransformComponent, *components.VelocityComponent](s.entityManager) {
		if s.entityManager.IsDestroyed(id) {
			continue
		}
		saucer := ecs.MustComponent[*components.SaucerComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		vel := ecs.MustComponent[*components.VelocityComponent](s.entityManager, id)

		if hasPlayer {
			s.steer(saucer, tf, vel, px, py, deltaTime)
		}
		s.updateBeam(id, saucer, tf, px, py, hasPlayer, deltaTime)
	}
}

// steer 追踪玩家并躲避陨石，更新飞碟速度
func (s *SaucerAISystem) steer(saucer *components.SaucerComponent,
	tf *components.TransformComponent, vel *components.VelocityComponent,
	px, py, deltaTime float64) {
	w, h := s.config.Arena.Width, s.config.Arena.Height

	// 追踪分量：指向玩家的最短环面方向
	seekX, seekY := utils.VecNormalize(
		utils.WrappedDelta(tf.X, px, w),
		utils.WrappedDelta(tf.Y, py, h))

	// 躲避分量：感知距离内的陨石按远近加权推开
	var avoidX, avoidY float64
	avoidDist := s.config.Saucer.AvoidDistance
	for _, astID := range ecs.GetEntitiesWith2[*components.AsteroidComponent,
		*components.TransformComponent](s.entityManager) {
		if s.entityManager.IsDestroyed(astID) {
			continue
		}
		astTF := ecs.MustComponent[*components.TransformComponent](s.entityManager, astID)
		dx := utils.WrappedDelta(astTF.X, tf.X, w)
		dy := utils.WrappedDelta(astTF.Y, tf.Y, h)
		dist := utils.VecLen(dx, dy)
		if dist >= avoidDist || dist == 0 {
			continue
		}
		weight := 1 - dist/avoidDist
		nx, ny := utils.VecNormalize(dx, dy)
		avoidX += nx * weight
		avoidY += ny * weight
	}

	ax := seekX + avoidX*saucerAvoidGain
	ay := seekY + avoidY*saucerAvoidGain
	ax, ay = utils.VecClampLen(ax, ay, 1)

	vel.VX += ax * saucer.MaxAccel * deltaTime
	vel.VY += ay * saucer.MaxAccel * deltaTime

	// 压横向分量：保留沿追踪方向的速度，衰减垂直方向的速度
	if seekX != 0 || seekY != 0 {
		along := vel.VX*seekX + vel.VY*seekY
		latX := vel.VX - along*seekX
		latY := vel.VY - along*seekY
		retain := math.Pow(saucerLateralRetention, deltaTime)
		vel.VX = along*seekX + latX*retain
		vel.VY = along*seekY + latY*retain
	}

	vel.VX, vel.VY = utils.VecClampLen(vel.VX, vel.VY, saucer.MaxSpeed)
}

// updateBeam 推进牵引光束的蓄力/投掷/冷却
func (s *SaucerAISystem) updateBeam(id ecs.EntityID, saucer *components.SaucerComponent,
	tf *components.TransformComponent, px, py float64, hasPlayer bool, deltaTime float64) {
	if saucer.BeamFlash > 0 {
		saucer.BeamFlash -= deltaTime
		if saucer.BeamFlash <= 0 {
			saucer.BeamFlash = 0
			saucer.BeamTarget = ecs.InvalidEntity
		}
	}

	switch saucer.BeamPhase {
	case components.BeamArming:
		saucer.BeamTimer -= deltaTime
		if saucer.BeamTimer > 0 || !hasPlayer {
			return
		}
		// 蓄力完成：有合适的目标才投掷，否则保持待发逐 tick 重试
		target, ok := s.pickBeamTarget(tf, px, py)
		if !ok {
			saucer.BeamTimer = 0
			return
		}
		s.throwAsteroid(target, px, py)
		saucer.BeamTarget = target
		saucer.BeamFlash = beamFlashDuration
		saucer.BeamPhase = components.BeamReloading
		reload := s.config.Saucer.BeamReloadMin +
			s.session.RNG().Float64()*(s.config.Saucer.BeamReloadMax-s.config.Saucer.BeamReloadMin)
		saucer.BeamTimer = reload
		ecs.Publish(s.bus, game.BeamThrowEvent{Target: target})

	case components.BeamReloading:
		saucer.BeamTimer -= deltaTime
		if saucer.BeamTimer <= 0 {
			saucer.BeamPhase = components.BeamArming
			saucer.BeamTimer = s.config.Saucer.BeamArmDelay
		}
	}
}

// pickBeamTarget 选择光束目标
// 条件：离飞碟不超过 beamRange，离玩家不小于 beamMinDistance；取最近者
func (s *SaucerAISystem) pickBeamTarget(tf *components.TransformComponent,
	px, py float64) (ecs.EntityID, bool) {
	w, h := s.config.Arena.Width, s.config.Arena.Height
	rangeSq := s.config.Saucer.BeamRange * s.config.Saucer.BeamRange
	minPlayerSq := s.config.Saucer.BeamMinDistance * s.config.Saucer.BeamMinDistance

	best := ecs.InvalidEntity
	bestSq := rangeSq + 1
	for _, astID := range ecs.GetEntitiesWith2[*components.AsteroidComponent,
		*components.TransformComponent](s.entityManager) {
		if s.entityManager.IsDestroyed(astID) {
			continue
		}
		astTF := ecs.MustComponent[*components.TransformComponent](s.entityManager, astID)
		saucerSq := utils.WrappedDistanceSq(tf.X, tf.Y, astTF.X, astTF.Y, w, h)
		if saucerSq > rangeSq || saucerSq >= bestSq {
			continue
		}
		if utils.WrappedDistanceSq(px, py, astTF.X, astTF.Y, w, h) < minPlayerSq {
			continue
		}
		best = astID
		bestSq = saucerSq
	}
	return best, best != ecs.InvalidEntity
}

// throwAsteroid 把目标陨石朝玩家甩出
func (s *SaucerAISystem) throwAsteroid(target ecs.EntityID, px, py float64) {
	astTF, ok1 := ecs.GetComponent[*components.TransformComponent](s.entityManager, target)
	astVel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.entityManager, target)
	if !ok1 || !ok2 {
		return
	}
	w, h := s.config.Arena.Width, s.config.Arena.Height
	nx, ny := utils.VecNormalize(
		utils.WrappedDelta(astTF.X, px, w),
		utils.WrappedDelta(astTF.Y, py, h))
	if nx == 0 && ny == 0 {
		nx = 1
	}
	astVel.VX = nx * s.config.Saucer.ThrowSpeed
	astVel.VY = ny * s.config.Saucer.ThrowSpeed
}

// findPlayer 返回玩家位置；复活等待期间没有玩家
func (s *SaucerAISystem) findPlayer() (float64, float64, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.ShipComponent,
		*components.TransformComponent](s.entityManager) {
		if s.entityManager.IsDestroyed(id) {
			continue
		}
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		return tf.X, tf.Y, true
	}
	return 0, 0, false
}
