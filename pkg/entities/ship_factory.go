package entities

import (
	"fmt"

	"github.com/decker502/asteroids/internal/shape"
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// shipColliderScale 机身碰撞圆相对机身尺寸的比例
// 判定圆略小于三角轮廓，贴边擦过不算命中
const shipColliderScale = 0.7

// NewShip 创建玩家飞船实体
// 机头朝上（Rotation=0），初速度为零
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - x, y: 出生位置（战场坐标）
//   - invulnFor: 出生后的无敌窗口时长（秒），0 表示无保护
//
// 返回:
//   - ecs.EntityID: 创建的飞船实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewShip(em *ecs.EntityManager, cfg *config.GameConfig, x, y, invulnFor float64) (ecs.EntityID, error) {
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

	// 位置组件（机头朝上）
	em.AddComponent(id, &components.TransformComponent{
		X: x,
		Y: y,
	})

	// 速度组件（阻尼让飞船松开推进键后缓慢滑停）
	em.AddComponent(id, &components.VelocityComponent{
		Damping: cfg.Ship.Damping,
	})

	// 操控与武器参数
	em.AddComponent(id, &components.ShipComponent{
		ThrustPower:  cfg.Ship.ThrustPower,
		TurnSpeed:    cfg.Ship.TurnSpeed,
		ReloadTime:   cfg.Ship.ReloadTime,
		MuzzleSpeed:  cfg.Ship.MuzzleSpeed,
		MuzzleOffset: cfg.Ship.MuzzleOffset,
	})

	// 受击保护状态
	em.AddComponent(id, &components.HealthComponent{
		InvulnRemaining: invulnFor,
	})

	// 碰撞体
	em.AddComponent(id, &components.ColliderComponent{
		Radius:  cfg.Ship.Size * shipColliderScale,
		Faction: types.FactionPlayer,
	})

	// 三角机身轮廓
	em.AddComponent(id, &components.OutlineComponent{
		Points: shape.Ship(cfg.Ship.Size),
		Scale:  1,
	})

	return id, nil
}
