// Package utils 提供游戏开发中常用的工具函数
//
// wrap.go 提供环形战场的坐标数学，用于处理屏幕边缘穿越。
//
// # 坐标系统概述
//
// 战场是一个 [0,W)×[0,H) 的环形平面：实体从一条边飞出后立即从对边
// 以相同的坐标偏移进入，速度保持不变。两个轴独立取模。
//
// 核心约定：
//   - **战场坐标**：x ∈ [0,W)，y ∈ [0,H)，由 WrapCoord 保证
//   - **最短位移**：环面上两点间的位移取"最近镜像"，由 WrappedDelta 给出，
//     结果落在 (-size/2, size/2] 区间
//
// # 使用场景
//
// - **运动系统**：积分后用 WrapPosition 把位置收回战场
// - **碰撞检测**：用 WrappedDistanceSq 做跨边界的圆-圆判定
// - **飞碟AI**：用 WrappedDelta 计算追踪玩家的最短方向
package utils

import "math"

// WrapCoord 把单轴坐标收回 [0, size) 区间
// 对任意大小的越界量都成立（包括一步跨越多个战场宽度的高速实体）
func WrapCoord(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// 浮点舍入兜底：负方向极小量加 size 后可能舍入回 size 本身
	if v >= size {
		v = 0
	}
	return v
}

// WrapPosition 把二维位置收回 [0,w)×[0,h) 战场
func WrapPosition(x, y, w, h float64) (float64, float64) {
	return WrapCoord(x, w), WrapCoord(y, h)
}

// WrappedDelta 返回环面上从 a 到 b 的最短有符号位移
// 结果落在 (-size/2, size/2] 区间
func WrappedDelta(a, b, size float64) float64 {
	d := b - a
	if size <= 0 {
		return d
	}
	d = math.Mod(d, size)
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// WrappedDistanceSq 返回环面上两点间最短距离的平方
// 碰撞检测用平方距离避免开方
func WrappedDistanceSq(x1, y1, x2, y2, w, h float64) float64 {
	dx := WrappedDelta(x1, x2, w)
	dy := WrappedDelta(y1, y2, h)
	return dx*dx + dy*dy
}

// WrappedDistance 返回环面上两点间的最短距离
func WrappedDistance(x1, y1, x2, y2, w, h float64) float64 {
	return math.Sqrt(WrappedDistanceSq(x1, y1, x2, y2, w, h))
}
