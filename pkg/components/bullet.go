package components

// BulletComponent 标记玩家子弹实体
// 子弹的飞行寿命由 LifetimeComponent 管理；
// 命中判定后子弹立即标记销毁，保证一发子弹最多击毁一个目标
type BulletComponent struct{}
