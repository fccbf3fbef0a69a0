package types

// SizeTier 定义陨石的体型等级
// 等级决定分裂行为：大陨石分裂成两个中陨石，中陨石分裂成两个小陨石，
// 小陨石被击毁后直接消失
type SizeTier int

const (
	// TierLarge 大陨石
	TierLarge SizeTier = iota
	// TierMedium 中陨石
	TierMedium
	// TierSmall 小陨石
	TierSmall
)

// String 返回体型等级的字符串表示
func (t SizeTier) String() string {
	switch t {
	case TierLarge:
		return "Large"
	case TierMedium:
		return "Medium"
	case TierSmall:
		return "Small"
	default:
		return "Unknown"
	}
}

// Smaller 返回下一级更小的体型
// 小陨石没有下一级，返回值的第二项为 false
func (t SizeTier) Smaller() (SizeTier, bool) {
	switch t {
	case TierLarge:
		return TierMedium, true
	case TierMedium:
		return TierSmall, true
	default:
		return TierSmall, false
	}
}

// SplitCount 返回该体型被击毁时产生的子陨石数量
func (t SizeTier) SplitCount() int {
	if t == TierSmall {
		return 0
	}
	return 2
}

// AllTiers 按从大到小的顺序返回所有体型等级
// 用于配置校验和测试遍历
func AllTiers() []SizeTier {
	return []SizeTier{TierLarge, TierMedium, TierSmall}
}
