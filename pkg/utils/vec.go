package utils

import "math"

// VecLen 返回二维向量的长度
func VecLen(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// VecNormalize 返回单位向量；零向量返回 (0, 0)
func VecNormalize(x, y float64) (float64, float64) {
	l := VecLen(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// VecClampLen 把向量长度限制在 max 以内，方向不变
func VecClampLen(x, y, max float64) (float64, float64) {
	l := VecLen(x, y)
	if l <= max || l == 0 {
		return x, y
	}
	s := max / l
	return x * s, y * s
}

// HeadingVec 返回朝向角对应的单位向量
// 朝向角 0 指向屏幕上方（-Y），顺时针为正，与飞船的机头约定一致
func HeadingVec(angle float64) (float64, float64) {
	return math.Sin(angle), -math.Cos(angle)
}
