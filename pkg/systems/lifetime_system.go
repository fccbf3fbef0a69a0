package systems

import (
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 子弹、碎片和道具都带寿命：到期后自动标记销毁，下次提交时移除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有限时实体的存在时间，销毁到期实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}
