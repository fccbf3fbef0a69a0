// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针输入状态
// 用于统一处理鼠标和触摸输入
type PointerState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
	// 当前活动触摸点数量（双指触摸用于暂停切换）
	TouchCount int
}

// GetPointerState 获取当前帧的指针输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetPointerState() PointerState {
	state := PointerState{}

	// 首先检查触摸输入（移动设备/触屏浏览器）
	justIDs := inpututil.AppendJustPressedTouchIDs(nil)
	allIDs := ebiten.AppendTouchIDs(nil)
	state.TouchCount = len(allIDs)

	if len(justIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(justIDs[0])
		state.IsTouching = true
		return state
	}
	if len(allIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
		state.X, state.Y = ebiten.CursorPosition()
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// FireZoneRatio 触屏开火按钮区域占屏幕短边的比例
const FireZoneRatio = 0.2

// InFireZone 判断触摸点是否落在右下角的开火按钮区域
// 区域是边长为 min(w,h)*FireZoneRatio 的正方形，贴屏幕右下角
func InFireZone(x, y, w, h int) bool {
	size := int(FireZoneRatio * math.Min(float64(w), float64(h)))
	return x >= w-size && y >= h-size
}

// StickVector 把触摸点相对屏幕中心的偏移换算成虚拟摇杆向量
// 返回朝向角（与 HeadingVec 同一约定）和归一化力度 [0,1]
// deadZone 为死区半径（像素），死区内力度为 0
func StickVector(x, y, cx, cy int, deadZone float64) (angle, strength float64) {
	dx := float64(x - cx)
	dy := float64(y - cy)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= deadZone {
		return 0, 0
	}

	// 摇杆方向 → 朝向角：atan2 以屏幕上方为 0，顺时针为正
	angle = math.Atan2(dx, -dy)

	// 力度随偏移线性增长，偏移达到 3 倍死区时满杆
	strength = (dist - deadZone) / (deadZone * 2)
	if strength > 1 {
		strength = 1
	}
	return angle, strength
}
