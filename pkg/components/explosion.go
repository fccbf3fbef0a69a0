package components

// ExplosionComponent 标记爆炸特效实体
// 爆炸不参与碰撞，只做视觉表现：半径逐 tick 扩张，透明度随寿命衰减，
// 寿命结束后由爆炸系统销毁
type ExplosionComponent struct {
	Age      float64 // 已存在时间（秒）
	Duration float64 // 总寿命（秒）
	Radius   float64 // 当前半径（像素），每 tick 乘扩张系数
}
