package entities

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// NewPowerUp 创建道具实体
// 道具在掉落点缓慢漂移，漂浮寿命耗尽后自动消失
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - kind: 道具种类
//   - x, y: 掉落位置（战场坐标）
//   - vx, vy: 漂移速度（像素/秒，通常取被击毁陨石速度的一小部分）
//
// 返回:
//   - ecs.EntityID: 创建的道具实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewPowerUp(em *ecs.EntityManager, cfg *config.GameConfig, kind types.PowerUpKind,
	x, y, vx, vy float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("game config cannot be nil")
	}

	id := em.CreateEntity()
	if id == ecs.InvalidEntity {
		return ecs.InvalidEntity, fmt.Errorf("entity capacity exhausted")
	}

	em.AddComponent(id, &components.TransformComponent{
		X: x,
		Y: y,
	})

	em.AddComponent(id, &components.VelocityComponent{
		VX: vx,
		VY: vy,
	})

	em.AddComponent(id, &components.PowerUpComponent{
		Kind: kind,
	})

	em.AddComponent(id, &components.ColliderComponent{
		Radius:  cfg.PowerUps.Radius,
		Faction: types.FactionPowerUp,
	})

	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: cfg.PowerUps.Lifetime,
	})

	return id, nil
}
