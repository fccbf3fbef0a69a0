package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（用于菜单标题入场）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（比 Cubic 更柔和，用于爆炸与横幅的透明度衰减）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快（用于碎片的尾段淡出）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// PulseWave 返回 [0,1] 之间的正弦脉冲，用于"按任意键"提示的闪烁
// period 为一个完整脉冲的周期（秒）
func PulseWave(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	return 0.5 + 0.5*math.Sin(2*math.Pi*elapsed/period)
}
