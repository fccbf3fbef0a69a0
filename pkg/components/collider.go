package components

import (
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// ColliderComponent 定义实体的圆形碰撞体
// 碰撞检测系统用半径做圆-圆相交测试，用阵营标签过滤有效碰撞对
type ColliderComponent struct {
	Radius  float64       // 碰撞半径（像素）
	Faction types.Faction // 碰撞阵营

	// 分裂出的子陨石在出生后的短暂时间内不与兄弟/父实体碰撞，
	// 避免重叠出生导致的连环自爆
	IgnoreEntity ecs.EntityID // 忽略碰撞的对象实体（0 表示无）
	IgnoreTicks  int          // 剩余忽略 tick 数，运动系统每 tick 递减
}
