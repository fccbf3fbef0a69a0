package components

// VelocityComponent 存储实体的线速度与角速度
// 由运动系统积分，由碰撞裁决系统施加击退冲量
type VelocityComponent struct {
	VX              float64 // X方向线速度（像素/秒）
	VY              float64 // Y方向线速度（像素/秒）
	AngularVelocity float64 // 角速度（弧度/秒）
	Damping         float64 // 每秒速度衰减系数，0 表示不衰减（陨石、子弹）
}
