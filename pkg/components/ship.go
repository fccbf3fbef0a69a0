package components

// ShipComponent 存储玩家飞船的操控与武器状态
// 推进/转向参数来自配置文件，冷却计时由飞船控制系统每 tick 递减
type ShipComponent struct {
	ThrustPower float64 // 推进加速度（像素/秒²）
	TurnSpeed   float64 // 转向角速度（弧度/秒）

	ReloadTime   float64 // 开火间隔（秒）
	FireCooldown float64 // 距下次可开火的剩余时间（秒）
	MuzzleSpeed  float64 // 子弹出膛速度（像素/秒）
	MuzzleOffset float64 // 炮口相对机头的前置距离（像素）

	// TwinShot 双管武器升级（道具获得，阵亡后失去）
	TwinShot bool

	// Thrusting 本 tick 是否正在推进（渲染尾焰用）
	Thrusting bool
}
