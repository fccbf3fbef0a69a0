package components

import "github.com/decker502/asteroids/internal/shape"

// OutlineComponent 存储实体的矢量轮廓(渲染系统绘制的白色线框)
// 轮廓为局部坐标多边形，绘制时按 Transform 旋转平移
type OutlineComponent struct {
	Points shape.Outline // 局部坐标轮廓
	Scale  float64       // 绘制缩放，默认 1
}
