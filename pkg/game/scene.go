package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., main menu, gameplay).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Pausable 是一个可选接口，用于支持场景响应窗口失焦
//
// 实现此接口的场景会在游戏窗口失去焦点时被调用 OnFocusLost()，
// 典型用途是对局场景自动暂停，避免玩家切出窗口时角色被击毁
type Pausable interface {
	// OnFocusLost 在窗口失去焦点时调用
	OnFocusLost()
}

// InputSampler 是一个可选接口，用于每帧采样一次输入
//
// 追帧时同一渲染帧可能连续运行多个模拟 tick，而按键的按下沿
// 在整帧内都为真。实现此接口的场景会在每帧的 tick 循环开始前
// 被调用一次 SampleInput()，把输入快照存进场景内部，按下沿由
// 第一个消费它的 tick 清除，按住状态则对同帧的后续 tick 可见
type InputSampler interface {
	// SampleInput 在每个渲染帧开始时调用
	SampleInput()
}
