package components

import "github.com/decker502/asteroids/pkg/ecs"

// BeamPhase 牵引光束的阶段
type BeamPhase int

const (
	// BeamArming 光束蓄力中，计时结束后抓取陨石投掷
	BeamArming BeamPhase = iota
	// BeamReloading 投掷后的冷却阶段
	BeamReloading
)

// SaucerComponent 存储飞碟的AI状态
// 飞碟追踪玩家、躲避陨石，并周期性地用牵引光束把陨石甩向玩家
type SaucerComponent struct {
	MaxSpeed float64 // 最大速度（像素/秒）
	MaxAccel float64 // 最大加速度（像素/秒²）

	BeamPhase BeamPhase // 当前光束阶段
	BeamTimer float64   // 当前阶段剩余时间（秒）

	// BeamTarget 光束锁定的陨石（仅在投掷瞬间有效，渲染光束线用）
	BeamTarget ecs.EntityID
	// BeamFlash 投掷后光束线的残留显示时间（秒）
	BeamFlash float64
}
