package entities

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// NewBullet 创建玩家子弹实体
// 子弹沿出膛方向匀速直线飞行，寿命耗尽后自动消失
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - x, y: 出膛位置（战场坐标，已含炮口前置偏移）
//   - vx, vy: 出膛速度（像素/秒，已叠加飞船自身速度）
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewBullet(em *ecs.EntityManager, cfg *config.GameConfig, x, y, vx, vy float64) (ecs.EntityID, error) {
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

	em.AddComponent(id, &components.BulletComponent{})

	em.AddComponent(id, &components.ColliderComponent{
		Radius:  cfg.Bullet.Radius,
		Faction: types.FactionBullet,
	})

	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: cfg.Bullet.Lifetime,
	})

	return id, nil
}
