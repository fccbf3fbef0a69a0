package components

// TransformComponent 存储实体在战场上的位置与朝向
// 位置由运动系统维持在 [0,W)×[0,H) 环形战场内
// Rotation 为朝向角（弧度），0 指向屏幕上方，顺时针为正
type TransformComponent struct {
	X        float64 // 战场坐标X
	Y        float64 // 战场坐标Y
	Rotation float64 // 朝向角（弧度）
}
