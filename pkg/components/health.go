package components

// HealthComponent 存储飞船的受击保护状态
// 剩余生命数由 game.Session 持有；本组件只跟踪复活后的无敌窗口，
// 窗口期内与陨石/碎片接触不扣生命，只产生击退
type HealthComponent struct {
	InvulnRemaining float64 // 无敌窗口剩余时间（秒），0 表示可被伤害
}

// Invulnerable 返回实体当前是否处于无敌窗口
func (h *HealthComponent) Invulnerable() bool {
	return h.InvulnRemaining > 0
}
