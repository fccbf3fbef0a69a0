// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Faction 定义实体的碰撞阵营
// 碰撞检测系统使用阵营对过滤表决定哪些实体组合需要检测
type Faction int

const (
	// FactionNone 无阵营（不参与碰撞）
	FactionNone Faction = iota
	// FactionPlayer 玩家飞船
	FactionPlayer
	// FactionAsteroid 陨石
	FactionAsteroid
	// FactionBullet 玩家子弹
	FactionBullet
	// FactionDebris 爆炸碎片
	FactionDebris
	// FactionPowerUp 道具
	FactionPowerUp
	// FactionSaucer 飞碟
	FactionSaucer
)

// String 返回阵营的字符串表示
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "Player"
	case FactionAsteroid:
		return "Asteroid"
	case FactionBullet:
		return "Bullet"
	case FactionDebris:
		return "Debris"
	case FactionPowerUp:
		return "PowerUp"
	case FactionSaucer:
		return "Saucer"
	default:
		return "None"
	}
}
