package systems

import (
	"log"
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/utils"
)

// twinShotSpread 双管武器两发子弹的横向间距相对机身尺寸的比例
const twinShotSpread = 0.4

// ShipControlSystem 飞船操控系统
// 把输入意图转成转向/推进/开火动作：
//   - 转向键直接改朝向角；触屏摇杆存在时机头向摇杆方向收敛
//   - 推进沿机头方向加速（速度衰减由运动系统统一处理）
//   - 开火受冷却计时约束，子弹从炮口位置出膛并叠加机身速度
type ShipControlSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	bus           *ecs.EventBus
}

// NewShipControlSystem 创建飞船操控系统
func NewShipControlSystem(em *ecs.EntityManager, cfg *config.GameConfig, bus *ecs.EventBus) *ShipControlSystem {
	return &ShipControlSystem{
		entityManager: em,
		config:        cfg,
		bus:           bus,
	}
}

// Update 按本 tick 的输入意图驱动所有飞船实体
func (s *ShipControlSystem) Update(deltaTime float64, in Intents) {
	ships := ecs.GetEntitiesWith3[*components.ShipComponent,
		*components.TransformComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range ships {
		ship := ecs.MustComponent[*components.ShipComponent](s.entityManager, id)
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		vel := ecs.MustComponent[*components.VelocityComponent](s.entityManager, id)

		// 转向
		if in.HasAim {
			s.steerToward(tf, ship, in.AimHeading, deltaTime)
		} else {
			if in.RotateLeft {
				tf.Rotation -= ship.TurnSpeed * deltaTime
			}
			if in.RotateRight {
				tf.Rotation += ship.TurnSpeed * deltaTime
			}
		}

		// 推进
		ship.Thrusting = false
		if in.Thrust {
			power := ship.ThrustPower
			if in.HasAim {
				power *= in.AimStrength
			}
			hx, hy := utils.HeadingVec(tf.Rotation)
			vel.VX += hx * power * deltaTime
			vel.VY += hy * power * deltaTime
			ship.Thrusting = true
		}

		// 开火冷却
		if ship.FireCooldown > 0 {
			ship.FireCooldown -= deltaTime
			if ship.FireCooldown < 0 {
				ship.FireCooldown = 0
			}
		}
		if in.Fire && ship.FireCooldown == 0 {
			s.fire(id, ship, tf, vel)
			ship.FireCooldown = ship.ReloadTime
		}
	}
}

// steerToward 让机头向目标朝向收敛，转速上限为 TurnSpeed
func (s *ShipControlSystem) steerToward(tf *components.TransformComponent,
	ship *components.ShipComponent, target, deltaTime float64) {
	// 归一化角差到 (-π, π]，沿短弧转
	diff := math.Mod(target-tf.Rotation, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff <= -math.Pi {
		diff += 2 * math.Pi
	}

	maxStep := ship.TurnSpeed * deltaTime
	if math.Abs(diff) <= maxStep {
		tf.Rotation = target
	} else if diff > 0 {
		tf.Rotation += maxStep
	} else {
		tf.Rotation -= maxStep
	}
}

// fire 从炮口发射子弹（双管武器发射两发平行弹）
func (s *ShipControlSystem) fire(shooter ecs.EntityID, ship *components.ShipComponent,
	tf *components.TransformComponent, vel *components.VelocityComponent) {
	hx, hy := utils.HeadingVec(tf.Rotation)

	// 炮口在机头前方
	noseDist := s.config.Ship.Size + ship.MuzzleOffset
	muzzleX := tf.X + hx*noseDist
	muzzleY := tf.Y + hy*noseDist

	// 子弹速度 = 机身速度 + 出膛速度
	bvx := vel.VX + hx*ship.MuzzleSpeed
	bvy := vel.VY + hy*ship.MuzzleSpeed

	if ship.TwinShot {
		// 垂直机头方向的左右偏移
		px, py := -hy, hx
		offset := s.config.Ship.Size * twinShotSpread
		for _, side := range []float64{-1, 1} {
			_, err := entities.NewBullet(s.entityManager, s.config,
				muzzleX+px*offset*side, muzzleY+py*offset*side, bvx, bvy)
			if err != nil {
				log.Printf("[ShipControl] 子弹创建失败: %v", err)
				return
			}
		}
	} else {
		_, err := entities.NewBullet(s.entityManager, s.config, muzzleX, muzzleY, bvx, bvy)
		if err != nil {
			log.Printf("[ShipControl] 子弹创建失败: %v", err)
			return
		}
	}

	ecs.Publish(s.bus, game.BulletFiredEvent{Shooter: shooter, TwinShot: ship.TwinShot})
}
