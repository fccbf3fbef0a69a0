package types

// PowerUpKind 定义道具的种类
type PowerUpKind int

const (
	// PowerUpExtraLife 额外生命
	PowerUpExtraLife PowerUpKind = iota
	// PowerUpTwinShot 双管武器升级
	PowerUpTwinShot
)

// String 返回道具种类的字符串表示
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraLife:
		return "ExtraLife"
	case PowerUpTwinShot:
		return "TwinShot"
	default:
		return "Unknown"
	}
}
