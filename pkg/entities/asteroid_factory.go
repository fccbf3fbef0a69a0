package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/decker502/asteroids/internal/shape"
	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// NewAsteroid 创建指定体型等级的陨石实体
// 轮廓由注入的随机源生成，相同种子产出相同的岩石形状
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - rng: 本局随机源（轮廓顶点抖动与初始朝向）
//   - tier: 体型等级
//   - x, y: 出生位置（战场坐标）
//   - vx, vy: 初始线速度（像素/秒）
//   - spin: 初始角速度（弧度/秒）
//
// 返回:
//   - ecs.EntityID: 创建的陨石实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewAsteroid(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand,
	tier types.SizeTier, x, y, vx, vy, spin float64) (ecs.EntityID, error) {
	if em == nil {
		return ecs.InvalidEntity, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return ecs.InvalidEntity, fmt.Errorf("game config cannot be nil")
	}
	if rng == nil {
		return ecs.InvalidEntity, fmt.Errorf("random source cannot be nil")
	}

	id := em.CreateEntity()
	if id == ecs.InvalidEntity {
		return ecs.InvalidEntity, fmt.Errorf("entity capacity exhausted")
	}

	tc := cfg.Tier(tier)

	// 初始朝向随机，让同形状的陨石看起来也不一样
	em.AddComponent(id, &components.TransformComponent{
		X:        x,
		Y:        y,
		Rotation: rng.Float64() * 2 * math.Pi,
	})

	// 陨石不减速，永远匀速漂移
	em.AddComponent(id, &components.VelocityComponent{
		VX:              vx,
		VY:              vy,
		AngularVelocity: spin,
	})

	em.AddComponent(id, &components.AsteroidComponent{
		Tier: tier,
	})

	// 碰撞圆用等级标称半径；轮廓顶点的径向抖动只是视觉效果
	em.AddComponent(id, &components.ColliderComponent{
		Radius:  tc.Radius,
		Faction: types.FactionAsteroid,
	})

	em.AddComponent(id, &components.OutlineComponent{
		Points: shape.Asteroid(rng, tc.Radius, tc.VertexDrift, cfg.Waves.VertexCount),
		Scale:  1,
	})

	return id, nil
}
