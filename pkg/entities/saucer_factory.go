package entities

import (
	"fmt"

	"github.com/decker502/asteroids/internal/shape"
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// NewSaucer 创建飞碟实体
// 飞碟从战场边缘进入，由飞碟AI系统驱动追踪玩家并发射牵引光束
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - x, y: 出生位置（战场坐标，通常在边缘）
//
// 返回:
//   - ecs.EntityID: 创建的飞碟实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewSaucer(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
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

	// 速度完全由AI系统控制，不走阻尼
	em.AddComponent(id, &components.VelocityComponent{})

	// 入场先蓄力，光束计时从蓄力时长开始
	em.AddComponent(id, &components.SaucerComponent{
		MaxSpeed:  cfg.Saucer.MaxSpeed,
		MaxAccel:  cfg.Saucer.MaxAccel,
		BeamPhase: components.BeamArming,
		BeamTimer: cfg.Saucer.BeamArmDelay,
	})

	em.AddComponent(id, &components.ColliderComponent{
		Radius:  cfg.Saucer.Radius,
		Faction: types.FactionSaucer,
	})

	em.AddComponent(id, &components.OutlineComponent{
		Points: shape.Saucer(cfg.Saucer.Radius),
		Scale:  1,
	})

	return id, nil
}
