package systems

import (
	"log"
	"math"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

// saucerKnockMass 飞碟参与击退折算时的等效质量
const saucerKnockMass = 3.0

// ResolverSystem 碰撞裁决系统
// 把检测到的碰撞对折算成游戏结果：分裂、销毁、得分、扣生命、
// 无敌弹开、道具拾取。裁决是规则驱动的，除装饰性的击退冲量外
// 不做动量守恒的刚体响应。
//
// 玩家相关的碰撞对先裁决；销毁是幂等的（同一实体同 tick 只产生
// 一次销毁结果），保证一发子弹最多击毁一个目标
type ResolverSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	session       *game.Session
	bus           *ecs.EventBus
}

// NewResolverSystem 创建碰撞裁决系统
func NewResolverSystem(em *ecs.EntityManager, cfg *config.GameConfig, session *game.Session) *ResolverSystem {
	return &ResolverSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		bus:           session.Bus(),
	}
}

// Resolve 按固定优先级裁决本 tick 的碰撞对
func (s *ResolverSystem) Resolve(pairs []CollisionPair) {
	// 玩家对先行：同一 tick 玩家阵亡时，剩余裁决仍照常执行，
	// 但不会出现玩家已消失却还在结算玩家碰撞的情况
	for _, p := range pairs {
		if s.involvesPlayer(p) {
			s.resolvePair(p)
		}
	}
	for _, p := range pairs {
		if !s.involvesPlayer(p) {
			s.resolvePair(p)
		}
	}
}

// involvesPlayer 返回碰撞对是否含玩家阵营实体
func (s *ResolverSystem) involvesPlayer(p CollisionPair) bool {
	return s.factionOf(p.A) == types.FactionPlayer || s.factionOf(p.B) == types.FactionPlayer
}

// factionOf 返回实体的碰撞阵营；无碰撞体时为 FactionNone
func (s *ResolverSystem) factionOf(id ecs.EntityID) types.Faction {
	col, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
	if !ok {
		return types.FactionNone
	}
	return col.Faction
}

// byFaction 从碰撞对中取出指定阵营的实体，返回 (该实体, 对方)
func (s *ResolverSystem) byFaction(p CollisionPair, f types.Faction) (ecs.EntityID, ecs.EntityID) {
	if s.factionOf(p.A) == f {
		return p.A, p.B
	}
	return p.B, p.A
}

// resolvePair 按阵营组合分发裁决规则
func (s *ResolverSystem) resolvePair(p CollisionPair) {
	key := pairKey(s.factionOf(p.A), s.factionOf(p.B))

	switch key {
	case pairKey(types.FactionBullet, types.FactionAsteroid):
		bullet, asteroid := s.byFaction(p, types.FactionBullet)
		s.resolveBulletAsteroid(bullet, asteroid)
	case pairKey(types.FactionBullet, types.FactionSaucer):
		bullet, saucer := s.byFaction(p, types.FactionBullet)
		s.resolveBulletSaucer(bullet, saucer)
	case pairKey(types.FactionPlayer, types.FactionAsteroid):
		player, asteroid := s.byFaction(p, types.FactionPlayer)
		s.resolvePlayerHazard(player, asteroid, false)
	case pairKey(types.FactionPlayer, types.FactionSaucer):
		player, saucer := s.byFaction(p, types.FactionPlayer)
		s.resolvePlayerHazard(player, saucer, false)
	case pairKey(types.FactionPlayer, types.FactionDebris):
		player, debris := s.byFaction(p, types.FactionPlayer)
		s.resolvePlayerHazard(player, debris, true)
	case pairKey(types.FactionPlayer, types.FactionPowerUp):
		player, powerUp := s.byFaction(p, types.FactionPlayer)
		s.resolvePickup(player, powerUp)
	}
}

// resolveBulletAsteroid 子弹命中陨石：销毁子弹，陨石分裂或消失并计分
func (s *ResolverSystem) resolveBulletAsteroid(bullet, asteroid ecs.EntityID) {
	if s.entityManager.IsDestroyed(bullet) || s.entityManager.IsDestroyed(asteroid) {
		return
	}

	impactVX, impactVY := 0.0, 0.0
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, bullet); ok {
		impactVX, impactVY = vel.VX, vel.VY
	}

	s.entityManager.DestroyEntity(bullet)
	s.destroyAsteroid(asteroid, impactVX, impactVY)
}

// resolveBulletSaucer 子弹命中飞碟：双双销毁并计分
func (s *ResolverSystem) resolveBulletSaucer(bullet, saucer ecs.EntityID) {
	if s.entityManager.IsDestroyed(bullet) || s.entityManager.IsDestroyed(saucer) {
		return
	}

	tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, saucer)
	x, y := tf.X, tf.Y
	baseVX, baseVY := 0.0, 0.0
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, saucer); ok {
		baseVX, baseVY = vel.VX*0.25, vel.VY*0.25
	}

	s.entityManager.DestroyEntity(bullet)
	s.entityManager.DestroyEntity(saucer)
	s.session.AddScore(s.config.Saucer.Score)
	s.spawnWreckage(x, y, s.config.Explosion.SaucerRadius, baseVX, baseVY)

	ecs.Publish(s.bus, game.SaucerDestroyedEvent{X: x, Y: y})
}

// resolvePlayerHazard 玩家撞上危险物（陨石/飞碟/碎片）
// 无敌窗口内只弹开不扣生命；窗口外飞船被击毁。
// destroyHazard 为 true 时危险物同时消失（碎片）
func (s *ResolverSystem) resolvePlayerHazard(player, hazard ecs.EntityID, destroyHazard bool) {
	if s.entityManager.IsDestroyed(player) || s.entityManager.IsDestroyed(hazard) {
		return
	}

	health := ecs.MustComponent[*components.HealthComponent](s.entityManager, player)
	if health == nil {
		return
	}

	// 接触法线：玩家 → 危险物 的最短方向
	nx, ny := s.contactNormal(player, hazard)

	if health.Invulnerable() {
		s.applyKnockback(player, -nx, -ny, 1)
		if destroyHazard {
			s.entityManager.DestroyEntity(hazard)
		} else {
			s.applyKnockback(hazard, nx, ny, s.hazardMass(hazard))
		}
		ecs.Publish(s.bus, game.ShipKnockedEvent{})
		return
	}

	if destroyHazard {
		s.entityManager.DestroyEntity(hazard)
	} else {
		s.applyKnockback(hazard, nx, ny, s.hazardMass(hazard))
	}
	s.destroyShip(player)
}

// resolvePickup 玩家拾取道具
func (s *ResolverSystem) resolvePickup(player, powerUp ecs.EntityID) {
	if s.entityManager.IsDestroyed(player) || s.entityManager.IsDestroyed(powerUp) {
		return
	}

	pu := ecs.MustComponent[*components.PowerUpComponent](s.entityManager, powerUp)
	if pu == nil {
		return
	}
	kind := pu.Kind
	s.entityManager.DestroyEntity(powerUp)

	switch kind {
	case types.PowerUpExtraLife:
		s.session.GainLife()
	case types.PowerUpTwinShot:
		if ship, ok := ecs.GetComponent[*components.ShipComponent](s.entityManager, player); ok {
			ship.TwinShot = true
		}
	}

	log.Printf("[Resolver] 拾取道具: %v", kind)
	ecs.Publish(s.bus, game.PowerUpCollectedEvent{Kind: kind})
}

// destroyAsteroid 击毁陨石：计分、按等级分裂、残骸特效
func (s *ResolverSystem) destroyAsteroid(id ecs.EntityID, impactVX, impactVY float64) {
	ast := ecs.MustComponent[*components.AsteroidComponent](s.entityManager, id)
	tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
	if ast == nil || tf == nil {
		return
	}

	parentVX, parentVY := 0.0, 0.0
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
		parentVX, parentVY = vel.VX, vel.VY
	}

	tier := ast.Tier
	tc := s.config.Tier(tier)

	s.entityManager.DestroyEntity(id)
	s.session.AddScore(tc.Score)
	s.spawnWreckage(tf.X, tf.Y, tc.Radius, parentVX*0.25, parentVY*0.25)

	smaller, splits := tier.Smaller()
	if splits {
		s.splitInto(id, smaller, tf.X, tf.Y, parentVX, parentVY, impactVX, impactVY)
	}

	ecs.Publish(s.bus, game.AsteroidDestroyedEvent{
		Tier:  tier,
		X:     tf.X,
		Y:     tf.Y,
		Split: splits,
	})
}

// splitInto 在击毁点生成两个子陨石
// 子陨石继承父速度并带上沿横轴反向的速度偏移；横轴垂直于冲击方向，
// 冲击速度为零时回退到父速度方向，再退到 X 轴
func (s *ResolverSystem) splitInto(parent ecs.EntityID, tier types.SizeTier,
	x, y, parentVX, parentVY, impactVX, impactVY float64) {
	latX, latY := perpendicularAxis(impactVX, impactVY)
	if latX == 0 && latY == 0 {
		latX, latY = perpendicularAxis(parentVX, parentVY)
	}
	if latX == 0 && latY == 0 {
		latX = 1
	}

	rng := s.session.RNG()
	lateral := s.config.Waves.SplitLateralSpeed

	for _, side := range []float64{-1, 1} {
		child, err := entities.NewAsteroid(s.entityManager, s.config, rng, tier,
			x, y,
			parentVX+latX*lateral*side,
			parentVY+latY*lateral*side,
			(rng.Float64()*2-1)*s.config.Waves.SpinMax)
		if err != nil {
			log.Printf("[Resolver] 分裂子陨石创建失败: %v", err)
			continue
		}

		// 出生 tick 内不与击毁它们父体的那对实体碰撞
		if col, ok := ecs.GetComponent[*components.ColliderComponent](s.entityManager, child); ok {
			col.IgnoreEntity = parent
			col.IgnoreTicks = 1
		}
	}
}

// destroyShip 击毁玩家飞船：扣生命、残骸特效、必要时请求终局
func (s *ResolverSystem) destroyShip(player ecs.EntityID) {
	tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, player)
	if tf == nil {
		return
	}
	baseVX, baseVY := 0.0, 0.0
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, player); ok {
		baseVX, baseVY = vel.VX*0.25, vel.VY*0.25
	}

	s.entityManager.DestroyEntity(player)
	s.spawnWreckage(tf.X, tf.Y, s.config.Explosion.ShipRadius, baseVX, baseVY)

	remaining := s.session.LoseLife()
	log.Printf("[Resolver] 飞船被击毁, 剩余生命: %d", remaining)
	ecs.Publish(s.bus, game.ShipDestroyedEvent{LivesLeft: remaining, X: tf.X, Y: tf.Y})

	if remaining == 0 {
		s.session.RequestTransition(types.PhaseGameOver)
	}
}

// spawnWreckage 在击毁点生成爆炸与碎片
func (s *ResolverSystem) spawnWreckage(x, y, radius, baseVX, baseVY float64) {
	if _, err := entities.NewExplosion(s.entityManager, s.config, x, y, radius); err != nil {
		log.Printf("[Resolver] 爆炸特效创建失败: %v", err)
	}
	if _, err := entities.NewDebrisBurst(s.entityManager, s.config, s.session.RNG(),
		x, y, baseVX, baseVY); err != nil {
		log.Printf("[Resolver] 碎片创建失败: %v", err)
	}
}

// contactNormal 返回 a → b 的单位接触法线（环绕最短方向）
// 两实体重合时退化为 X 轴方向
func (s *ResolverSystem) contactNormal(a, b ecs.EntityID) (float64, float64) {
	tfA := ecs.MustComponent[*components.TransformComponent](s.entityManager, a)
	tfB := ecs.MustComponent[*components.TransformComponent](s.entityManager, b)
	if tfA == nil || tfB == nil {
		return 1, 0
	}

	dx := utils.WrappedDelta(tfA.X, tfB.X, s.config.Arena.Width)
	dy := utils.WrappedDelta(tfA.Y, tfB.Y, s.config.Arena.Height)
	nx, ny := utils.VecNormalize(dx, dy)
	if nx == 0 && ny == 0 {
		return 1, 0
	}
	return nx, ny
}

// applyKnockback 沿给定方向施加击退冲量，按质量折算成速度变化
func (s *ResolverSystem) applyKnockback(id ecs.EntityID, nx, ny, mass float64) {
	vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
	if !ok || mass <= 0 {
		return
	}
	impulse := s.config.Ship.Knockback / mass
	vel.VX += nx * impulse
	vel.VY += ny * impulse
}

// hazardMass 返回危险物的击退折算质量
func (s *ResolverSystem) hazardMass(id ecs.EntityID) float64 {
	if ast, ok := ecs.GetComponent[*components.AsteroidComponent](s.entityManager, id); ok {
		return s.config.Tier(ast.Tier).Mass
	}
	if _, ok := ecs.GetComponent[*components.SaucerComponent](s.entityManager, id); ok {
		return saucerKnockMass
	}
	return 1
}

// perpendicularAxis 返回与 (vx, vy) 垂直的单位轴；零向量返回 (0, 0)
func perpendicularAxis(vx, vy float64) (float64, float64) {
	length := math.Sqrt(vx*vx + vy*vy)
	if length == 0 {
		return 0, 0
	}
	return -vy / length, vx / length
}
