package types

// Phase 定义游戏主状态机的阶段
// 状态流转：Menu → Playing ⇄ Paused → GameOver → Menu
// 只有 Playing 阶段运行模拟系统；阶段切换仅发生在 tick 边界
type Phase int

const (
	// PhaseMenu 主菜单（初始状态）
	PhaseMenu Phase = iota
	// PhasePlaying 游戏进行中
	PhasePlaying
	// PhasePaused 暂停（模拟冻结，实体与分数保持不变）
	PhasePaused
	// PhaseGameOver 游戏结束（展示最终分数）
	PhaseGameOver
)

// String 返回阶段的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
