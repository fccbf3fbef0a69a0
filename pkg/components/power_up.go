package components

import "github.com/decker502/asteroids/pkg/types"

// PowerUpComponent 标记道具实体并记录道具种类
// 道具由波次导演在陨石被击毁时按概率掉落，漂浮一段时间后自动消失
type PowerUpComponent struct {
	Kind types.PowerUpKind // 道具种类
}
