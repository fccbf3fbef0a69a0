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

// NewExplosion 创建爆炸特效实体
// 爆炸停在原地逐 tick 扩张并淡出，不参与碰撞
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - x, y: 爆心位置（战场坐标）
//   - radius: 初始半径（像素），按被毁实体的体型取值
//
// 返回:
//   - ecs.EntityID: 创建的爆炸实体ID
//   - error: 依赖缺失或实体容量耗尽时返回错误
func NewExplosion(em *ecs.EntityManager, cfg *config.GameConfig, x, y, radius float64) (ecs.EntityID, error) {
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

	em.AddComponent(id, &components.ExplosionComponent{
		Duration: cfg.Explosion.Duration,
		Radius:   radius,
	})

	return id, nil
}

// NewDebrisBurst 在爆心四散创建一组碎片实体
// 碎片数量与寿命在配置窗口内随机；实体容量耗尽时丢弃剩余碎片，
// 返回已成功创建的部分
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏数值配置
//   - rng: 本局随机源
//   - x, y: 爆心位置（战场坐标）
//   - baseVX, baseVY: 碎片共同继承的基础漂移速度（像素/秒）
//
// 返回:
//   - []ecs.EntityID: 创建的碎片实体ID列表
//   - error: 依赖缺失时返回错误
func NewDebrisBurst(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand,
	x, y, baseVX, baseVY float64) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	count := cfg.Debris.MinCount
	if span := cfg.Debris.MaxCount - cfg.Debris.MinCount; span > 0 {
		count += rng.Intn(span + 1)
	}

	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		if id == ecs.InvalidEntity {
			// 容量已满，EntityManager 已记录日志
			break
		}

		angle := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * cfg.Debris.Speed
		sin, cos := math.Sincos(angle)

		em.AddComponent(id, &components.TransformComponent{
			X:        x,
			Y:        y,
			Rotation: rng.Float64() * 2 * math.Pi,
		})

		em.AddComponent(id, &components.VelocityComponent{
			VX:              baseVX + cos*speed,
			VY:              baseVY + sin*speed,
			AngularVelocity: (rng.Float64()*2 - 1) * cfg.Debris.SpinMax,
		})

		em.AddComponent(id, &components.DebrisComponent{})

		lifetime := cfg.Debris.MinLifetime +
			rng.Float64()*(cfg.Debris.MaxLifetime-cfg.Debris.MinLifetime)
		em.AddComponent(id, &components.LifetimeComponent{
			MaxLifetime: lifetime,
		})

		outline := shape.Shard(rng, cfg.Debris.MinLength, cfg.Debris.MaxLength)
		em.AddComponent(id, &components.OutlineComponent{
			Points: outline,
			Scale:  1,
		})

		em.AddComponent(id, &components.ColliderComponent{
			Radius:  outline.MaxRadius(),
			Faction: types.FactionDebris,
		})

		ids = append(ids, id)
	}

	return ids, nil
}
