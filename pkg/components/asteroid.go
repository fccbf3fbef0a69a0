package components

import "github.com/decker502/asteroids/pkg/types"

// AsteroidComponent 标记陨石实体并记录体型等级
// 等级决定被击毁时的分裂行为与得分（见碰撞裁决系统）
type AsteroidComponent struct {
	Tier types.SizeTier // 体型等级
}
