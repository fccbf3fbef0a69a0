package systems

import (
	"log"
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/utils"
)

// MovementSystem 运动积分系统
// 以固定步长积分所有实体的位置与朝向，位置越界时环绕回战场；
// 同时衰减带阻尼实体的速度、递减无敌窗口与碰撞忽略计时。
// 数值污染（NaN/Inf）会被就地复位并记录日志，模拟不中断
type MovementSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
}

// NewMovementSystem 创建运动积分系统
func NewMovementSystem(em *ecs.EntityManager, cfg *config.GameConfig) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 积分一个固定步长
func (s *MovementSystem) Update(deltaTime float64) {
	w := s.config.Arena.Width
	h := s.config.Arena.Height

	moving := ecs.GetEntitiesWith2[*components.TransformComponent,
		*components.VelocityComponent](s.entityManager)

	for _, id := range moving {
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		vel := ecs.MustComponent[*components.VelocityComponent](s.entityManager, id)

		s.sanitize(id, tf, vel)

		// 阻尼：配置值为每秒保留比例，换算到本步长
		if vel.Damping > 0 {
			factor := math.Pow(vel.Damping, deltaTime)
			vel.VX *= factor
			vel.VY *= factor
		}

		tf.X, tf.Y = utils.WrapPosition(tf.X+vel.VX*deltaTime, tf.Y+vel.VY*deltaTime, w, h)
		tf.Rotation += vel.AngularVelocity * deltaTime
	}

	// 无敌窗口倒计时
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](s.entityManager) {
		health := ecs.MustComponent[*components.HealthComponent](s.entityManager, id)
		if health.InvulnRemaining > 0 {
			health.InvulnRemaining -= deltaTime
			if health.InvulnRemaining < 0 {
				health.InvulnRemaining = 0
			}
		}
	}

	// 碰撞忽略倒计时
	for _, id := range ecs.GetEntitiesWith1[*components.ColliderComponent](s.entityManager) {
		col := ecs.MustComponent[*components.ColliderComponent](s.entityManager, id)
		if col.IgnoreTicks > 0 {
			col.IgnoreTicks--
			if col.IgnoreTicks == 0 {
				col.IgnoreEntity = ecs.InvalidEntity
			}
		}
	}
}

// sanitize 复位被 NaN/Inf 污染的运动状态
// 位置复位到战场中心，速度与朝向清零
func (s *MovementSystem) sanitize(id ecs.EntityID, tf *components.TransformComponent,
	vel *components.VelocityComponent) {
	if !finite(vel.VX) || !finite(vel.VY) || !finite(vel.AngularVelocity) {
		log.Printf("[Movement] 实体 %d 速度数值污染 (%g, %g, %g)，已清零",
			id, vel.VX, vel.VY, vel.AngularVelocity)
		vel.VX, vel.VY, vel.AngularVelocity = 0, 0, 0
	}
	if !finite(tf.X) || !finite(tf.Y) {
		log.Printf("[Movement] 实体 %d 位置数值污染 (%g, %g)，复位到战场中心", id, tf.X, tf.Y)
		tf.X = s.config.Arena.Width / 2
		tf.Y = s.config.Arena.Height / 2
	}
	if !finite(tf.Rotation) {
		log.Printf("[Movement] 实体 %d 朝向数值污染，复位为 0", id)
		tf.Rotation = 0
	}
}

// finite 返回 v 是否为有限数
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
