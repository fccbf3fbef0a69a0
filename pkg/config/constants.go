package config

// 窗口逻辑尺寸（与战场尺寸一致，Ebitengine 负责实际缩放）
const (
	// GameWindowWidth 游戏窗口逻辑宽度
	GameWindowWidth = 800
	// GameWindowHeight 游戏窗口逻辑高度
	GameWindowHeight = 600
)
