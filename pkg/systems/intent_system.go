package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/asteroids/pkg/utils"
)

// Intents 单个 tick 的输入意图快照
// 在 tick 开始时采样一次，本 tick 未消费即丢弃，不跨 tick 积累
type Intents struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool
	Pause       bool // 暂停切换（按下沿）
	Start       bool // 开始/重开（按下沿）

	// 触屏虚拟摇杆：直接给出目标朝向与推进力度，
	// 存在时操控系统优先于左右转向键
	HasAim      bool
	AimHeading  float64 // 目标朝向角（弧度，屏幕上方为 0）
	AimStrength float64 // 推进力度 [0,1]
}

// stickDeadZone 虚拟摇杆死区半径（像素）
const stickDeadZone = 24

// IntentSystem 输入意图采样系统
// 把键盘、鼠标与触屏输入统一成 Intents
//
// 触屏布局：
//   - 左半屏拖动为虚拟摇杆：方向决定机头朝向，越过死区的距离决定推进力度
//   - 右下角区域为开火钮
//   - 双指触摸切换暂停
type IntentSystem struct {
	// 双指暂停取触摸点数量的上升沿，避免长按连续触发
	lastTouchCount int
}

// NewIntentSystem 创建输入意图采样系统
func NewIntentSystem() *IntentSystem {
	return &IntentSystem{}
}

// Sample 采样当前 tick 的输入意图
// screenW, screenH 为逻辑屏幕尺寸，用于划分触屏操控区域
func (s *IntentSystem) Sample(screenW, screenH int) Intents {
	var in Intents

	// 键盘操控
	in.Thrust = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	in.RotateLeft = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	in.RotateRight = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.Start = inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)

	// 鼠标点击或新触摸都算开始意图（菜单/结算画面用）
	if utils.GetPointerState().JustPressed {
		in.Start = true
	}

	// 触屏操控：逐个触摸点分类
	touchIDs := ebiten.AppendTouchIDs(nil)
	for _, id := range touchIDs {
		x, y := ebiten.TouchPosition(id)

		if utils.InFireZone(x, y, screenW, screenH) {
			in.Fire = true
			continue
		}

		// 左半屏虚拟摇杆，锚点取左半屏中心
		if x < screenW/2 && !in.HasAim {
			angle, strength := utils.StickVector(x, y, screenW/4, screenH/2, stickDeadZone)
			if strength > 0 {
				in.HasAim = true
				in.AimHeading = angle
				in.AimStrength = strength
				in.Thrust = true
			}
		}
	}

	// 双指触摸上升沿 → 暂停
	if len(touchIDs) >= 2 && s.lastTouchCount < 2 {
		in.Pause = true
	}
	s.lastTouchCount = len(touchIDs)

	return in
}
