package game

import (
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// 游戏事件定义
//
// 模拟系统在 tick 内通过 ecs.EventBus 发布这些事件，
// 音效管理器和 HUD 订阅后做出响应。事件只描述已发生的事实，
// 不携带任何会反过来影响模拟状态的引用。

// BulletFiredEvent 玩家开火
type BulletFiredEvent struct {
	Shooter  ecs.EntityID
	TwinShot bool
}

// AsteroidDestroyedEvent 陨石被击毁
// Split 为 true 表示该陨石分裂出了更小的碎块
type AsteroidDestroyedEvent struct {
	Tier  types.SizeTier
	X, Y  float64
	Split bool
}

// ShipDestroyedEvent 玩家飞船被摧毁
type ShipDestroyedEvent struct {
	LivesLeft int
	X, Y      float64
}

// ShipSpawnedEvent 玩家飞船（重新）出现
type ShipSpawnedEvent struct {
	Invulnerable bool
}

// ShipKnockedEvent 无敌期内的飞船被陨石撞开
type ShipKnockedEvent struct{}

// WaveStartedEvent 新一波陨石入场
type WaveStartedEvent struct {
	Wave  int
	Count int
}

// WaveClearedEvent 当前波次全部清空
type WaveClearedEvent struct {
	Wave int
}

// SaucerSpawnedEvent 飞碟入场
type SaucerSpawnedEvent struct{}

// SaucerDestroyedEvent 飞碟被击毁
type SaucerDestroyedEvent struct {
	X, Y float64
}

// BeamThrowEvent 飞碟的牵引光束把陨石甩向玩家
type BeamThrowEvent struct {
	Target ecs.EntityID
}

// PowerUpDroppedEvent 道具掉落
type PowerUpDroppedEvent struct {
	Kind types.PowerUpKind
}

// PowerUpCollectedEvent 玩家拾取道具
type PowerUpCollectedEvent struct {
	Kind types.PowerUpKind
}

// ScoreChangedEvent 得分变化
type ScoreChangedEvent struct {
	Delta int
	Total int
}

// GameOverEvent 游戏结束
// HighScore 为结算后的历史最高分（含本局）
type GameOverEvent struct {
	Score     int
	Wave      int
	HighScore int
}
