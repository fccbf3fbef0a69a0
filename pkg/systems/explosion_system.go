package systems

import (
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
)

// ExplosionSystem 推进爆炸特效的扩张与消散
// 爆炸没有碰撞体，只是一个逐 tick 扩张的光环，寿命结束后销毁
type ExplosionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
}

// NewExplosionSystem 创建爆炸特效系统
func NewExplosionSystem(em *ecs.EntityManager, cfg *config.GameConfig) *ExplosionSystem {
	return &ExplosionSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 推进所有爆炸的年龄与半径，销毁到期的爆炸
func (s *ExplosionSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager) {
		explosion, ok := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, id)
		if !ok {
			continue
		}

		explosion.Age += deltaTime
		explosion.Radius *= s.config.Explosion.GrowthFactor

		if explosion.Age >= explosion.Duration {
			s.entityManager.DestroyEntity(id)
		}
	}
}
