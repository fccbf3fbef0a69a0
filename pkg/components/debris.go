package components

// DebrisComponent 标记爆炸碎片实体
// 碎片是陨石被击毁时四散的细长残片，带随机自旋，
// 会划伤玩家（Player×Debris 碰撞对），寿命由 LifetimeComponent 管理
type DebrisComponent struct{}
