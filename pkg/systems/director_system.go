package systems

import (
	"log"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

// DirectorState 波次导演的运行状态
type DirectorState int

const (
	// DirectorWaitingToStart 对局开始前：第一个 tick 布置玩家与首波陨石
	DirectorWaitingToStart DirectorState = iota
	// DirectorWaveActive 波次进行中
	DirectorWaveActive
	// DirectorWaveClearedPause 波次清空后的喘息间隔
	DirectorWaveClearedPause
	// DirectorPlayerRespawning 玩家阵亡后的复活等待
	DirectorPlayerRespawning
)

// String 返回状态的字符串表示
func (s DirectorState) String() string {
	switch s {
	case DirectorWaitingToStart:
		return "WaitingToStart"
	case DirectorWaveActive:
		return "WaveActive"
	case DirectorWaveClearedPause:
		return "WaveClearedPause"
	case DirectorPlayerRespawning:
		return "PlayerRespawning"
	default:
		return "Unknown"
	}
}

// safeSpawnAttempts 安全出生点的采样次数上限
// 超过后放弃安全距离约束直接落点，避免小战场上的死循环
const safeSpawnAttempts = 20

// DirectorSystem 波次导演系统
// 驱动对局节奏：布置波次、调度飞碟、安排玩家复活、按概率掉落道具。
// 每 tick 分两段执行：UpdateTimers 在模拟系统之前推进计时与出生，
// UpdateCounts 在碰撞裁决之后清点存量并触发波次切换
type DirectorSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	session       *game.Session
	bus           *ecs.EventBus

	state      DirectorState
	stateTimer float64 // WaveClearedPause / PlayerRespawning 的剩余时间

	saucerTimer   float64 // 距下次常规飞碟出现的累计时间
	pendingSaucer bool    // 大陨石分裂摇中的待出飞碟
}

// NewDirectorSystem 创建波次导演系统并订阅裁决事件
func NewDirectorSystem(em *ecs.EntityManager, cfg *config.GameConfig, session *game.Session) *DirectorSystem {
	s := &DirectorSystem{
		entityManager: em,
		config:        cfg,
		session:       session,
		bus:           session.Bus(),
		state:         DirectorWaitingToStart,
	}

	// 玩家阵亡 → 还有生命则进入复活等待
	// （生命耗尽时裁决系统已请求终局，导演不再动作）
	ecs.Subscribe(s.bus, func(e game.ShipDestroyedEvent) {
		if e.LivesLeft > 0 {
			s.state = DirectorPlayerRespawning
			s.stateTimer = s.config.Ship.RespawnDelay
			log.Printf("[Director] 玩家阵亡, %.1f 秒后复活", s.stateTimer)
		}
	})

	// 陨石被击毁 → 道具掉落与飞碟加班判定
	ecs.Subscribe(s.bus, func(e game.AsteroidDestroyedEvent) {
		s.rollPowerUpDrop(e.X, e.Y)
		if e.Tier == types.TierLarge && e.Split {
			if s.session.RNG().Float64() < s.config.Saucer.SplitChance {
				s.pendingSaucer = true
			}
		}
	})

	return s
}

// State 返回导演当前状态
func (s *DirectorSystem) State() DirectorState {
	return s.state
}

// UpdateTimers 推进导演计时并执行出生动作
// 在本 tick 的模拟系统之前调用
func (s *DirectorSystem) UpdateTimers(deltaTime float64) {
	switch s.state {
	case DirectorWaitingToStart:
		s.startRun()
	case DirectorWaveClearedPause:
		s.stateTimer -= deltaTime
		if s.stateTimer <= 0 {
			s.startWave(s.session.Wave() + 1)
		}
	case DirectorPlayerRespawning:
		s.stateTimer -= deltaTime
		if s.stateTimer <= 0 {
			s.respawnPlayer()
		}
	case DirectorWaveActive:
		s.updateSaucerSchedule(deltaTime)
	}
}

// UpdateCounts 清点存量并触发波次切换
// 在碰撞裁决之后、提交之前调用；分裂出的暂存子陨石计入存量，
// 保证波次不会因父陨石分裂瞬间被误判清空
func (s *DirectorSystem) UpdateCounts() {
	if s.state != DirectorWaveActive {
		return
	}
	if ecs.CountAlive1[*components.AsteroidComponent](s.entityManager) > 0 {
		return
	}

	s.state = DirectorWaveClearedPause
	s.stateTimer = s.config.Waves.ClearedDelay
	log.Printf("[Director] 第 %d 波清空", s.session.Wave())
	ecs.Publish(s.bus, game.WaveClearedEvent{Wave: s.session.Wave()})
}

// UpdateAttract 维持主菜单背景的漂浮陨石
// 没有玩家与计分，只保证画面上始终有 AttractCount 颗陨石
func (s *DirectorSystem) UpdateAttract(_ float64) {
	if ecs.CountAlive1[*components.AsteroidComponent](s.entityManager) >= s.config.Waves.AttractCount {
		return
	}

	rng := s.session.RNG()
	tier := types.TierLarge
	if rng.Float64() < 0.4 {
		tier = types.TierMedium
	}
	s.spawnAsteroidAt(tier,
		rng.Float64()*s.config.Arena.Width,
		rng.Float64()*s.config.Arena.Height, 1.0)
}

// startRun 布置新对局：居中出生玩家并开始第一波
func (s *DirectorSystem) startRun() {
	s.spawnPlayer()
	s.saucerTimer = 0
	s.pendingSaucer = false
	s.startWave(1)
}

// startWave 布置指定波次
// 数量 = baseCount + (wave-1)·countIncrement，速度按波次放大
func (s *DirectorSystem) startWave(wave int) {
	s.session.SetWave(wave)
	count := s.config.Waves.BaseCount + (wave-1)*s.config.Waves.CountIncrement
	scale := s.waveSpeedScale(wave)

	for i := 0; i < count; i++ {
		x, y := s.pickSafeSpawnPoint()
		s.spawnAsteroidAt(types.TierLarge, x, y, scale)
	}

	s.state = DirectorWaveActive
	log.Printf("[Director] 第 %d 波开始: %d 颗大陨石, 速度系数 %.2f", wave, count, scale)
	ecs.Publish(s.bus, game.WaveStartedEvent{Wave: wave, Count: count})
}

// waveSpeedScale 返回波次速度放大系数（有上限）
func (s *DirectorSystem) waveSpeedScale(wave int) float64 {
	scale := 1 + s.config.Waves.SpeedScalePerWave*float64(wave)
	if scale > s.config.Waves.SpeedScaleMax {
		scale = s.config.Waves.SpeedScaleMax
	}
	return scale
}

// pickSafeSpawnPoint 采样一个离玩家足够远的出生点
func (s *DirectorSystem) pickSafeSpawnPoint() (float64, float64) {
	rng := s.session.RNG()
	w, h := s.config.Arena.Width, s.config.Arena.Height
	px, py, hasPlayer := s.playerPosition()

	var x, y float64
	for i := 0; i < safeSpawnAttempts; i++ {
		x = rng.Float64() * w
		y = rng.Float64() * h
		if !hasPlayer {
			return x, y
		}
		if utils.WrappedDistance(x, y, px, py, w, h) >= s.config.Waves.SafeDistance {
			return x, y
		}
	}
	log.Printf("[Director] 安全出生点采样 %d 次未果, 放弃距离约束", safeSpawnAttempts)
	return x, y
}

// spawnAsteroidAt 在指定位置生成陨石，速度在出生速度带内随机
func (s *DirectorSystem) spawnAsteroidAt(tier types.SizeTier, x, y, speedScale float64) {
	rng := s.session.RNG()
	max := s.config.Waves.SpawnSpeedMax * speedScale

	_, err := entities.NewAsteroid(s.entityManager, s.config, rng, tier, x, y,
		(rng.Float64()*2-1)*max,
		(rng.Float64()*2-1)*max,
		(rng.Float64()*2-1)*s.config.Waves.SpinMax)
	if err != nil {
		log.Printf("[Director] 陨石生成失败: %v", err)
	}
}

// spawnPlayer 在战场中心生成玩家（带出生保护）
func (s *DirectorSystem) spawnPlayer() {
	_, err := entities.NewShip(s.entityManager, s.config,
		s.config.Arena.Width/2, s.config.Arena.Height/2,
		s.config.Ship.InvulnDuration)
	if err != nil {
		log.Printf("[Director] 玩家生成失败: %v", err)
		return
	}
	ecs.Publish(s.bus, game.ShipSpawnedEvent{Invulnerable: s.config.Ship.InvulnDuration > 0})
}

// respawnPlayer 复活玩家并回到波次进行状态
func (s *DirectorSystem) respawnPlayer() {
	s.spawnPlayer()
	s.state = DirectorWaveActive
	log.Printf("[Director] 玩家复活, 剩余生命: %d", s.session.Lives())
}

// updateSaucerSchedule 飞碟出场调度
// 常规间隔计时 + 大陨石分裂摇中的待出飞碟；同屏最多一架
func (s *DirectorSystem) updateSaucerSchedule(deltaTime float64) {
	if ecs.CountAlive1[*components.SaucerComponent](s.entityManager) > 0 {
		return
	}

	s.saucerTimer += deltaTime
	if s.pendingSaucer || s.saucerTimer >= s.config.Saucer.SpawnInterval {
		s.spawnSaucer()
		s.pendingSaucer = false
		s.saucerTimer = 0
	}
}

// spawnSaucer 从战场左右边缘随机一侧放出飞碟
func (s *DirectorSystem) spawnSaucer() {
	rng := s.session.RNG()
	x := 0.0
	if rng.Float64() < 0.5 {
		x = s.config.Arena.Width - 1
	}
	y := rng.Float64() * s.config.Arena.Height

	_, err := entities.NewSaucer(s.entityManager, s.config, x, y)
	if err != nil {
		log.Printf("[Director] 飞碟生成失败: %v", err)
		return
	}
	log.Printf("[Director] 飞碟入场")
	ecs.Publish(s.bus, game.SaucerSpawnedEvent{})
}

// rollPowerUpDrop 按概率在击毁点掉落道具
func (s *DirectorSystem) rollPowerUpDrop(x, y float64) {
	rng := s.session.RNG()
	if rng.Float64() >= s.config.PowerUps.DropChance {
		return
	}

	kind := s.pickPowerUpKind()
	_, err := entities.NewPowerUp(s.entityManager, s.config, kind, x, y,
		(rng.Float64()*2-1)*10,
		(rng.Float64()*2-1)*10)
	if err != nil {
		log.Printf("[Director] 道具生成失败: %v", err)
		return
	}
	log.Printf("[Director] 掉落道具: %v", kind)
	ecs.Publish(s.bus, game.PowerUpDroppedEvent{Kind: kind})
}

// pickPowerUpKind 按配置权重随机道具种类
func (s *DirectorSystem) pickPowerUpKind() types.PowerUpKind {
	weights := s.config.PowerUps.Weights
	extra := weights["extraLife"]
	twin := weights["twinShot"]
	total := extra + twin
	if total <= 0 {
		return types.PowerUpTwinShot
	}
	if s.session.RNG().Float64()*total < extra {
		return types.PowerUpExtraLife
	}
	return types.PowerUpTwinShot
}

// playerPosition 返回玩家位置；玩家不存在（复活等待中）时报告无玩家
func (s *DirectorSystem) playerPosition() (float64, float64, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.ShipComponent,
		*components.TransformComponent](s.entityManager) {
		if s.entityManager.IsDestroyed(id) {
			continue
		}
		tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
		return tf.X, tf.Y, true
	}
	return s.config.Arena.Width / 2, s.config.Arena.Height / 2, false
}
