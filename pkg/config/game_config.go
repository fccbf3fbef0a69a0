package config

import (
	"fmt"

	"github.com/decker502/asteroids/pkg/embedded"
	"github.com/decker502/asteroids/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfig 游戏数值调校配置
// 从 assets/config/game.yaml 加载；所有字段都经过 validateGameConfig 校验
type GameConfig struct {
	Arena     ArenaConfig           `yaml:"arena"`
	Loop      LoopConfig            `yaml:"loop"`
	Ship      ShipConfig            `yaml:"ship"`
	Bullet    BulletConfig          `yaml:"bullet"`
	Tiers     map[string]TierConfig `yaml:"tiers"`
	Waves     WaveConfig            `yaml:"waves"`
	Saucer    SaucerConfig          `yaml:"saucer"`
	PowerUps  PowerUpConfig         `yaml:"powerups"`
	Explosion ExplosionConfig       `yaml:"explosion"`
	Debris    DebrisConfig          `yaml:"debris"`
}

// ArenaConfig 战场尺寸
type ArenaConfig struct {
	Width  float64 `yaml:"width"`  // 战场宽度（像素）
	Height float64 `yaml:"height"` // 战场高度（像素）
}

// LoopConfig 固定步长主循环参数
type LoopConfig struct {
	TickRate        float64 `yaml:"tickRate"`        // 每秒模拟步数（固定步长 = 1/tickRate）
	MaxCatchUpSteps int     `yaml:"maxCatchUpSteps"` // 单帧最大补偿步数，超出的累积时间丢弃
	EntityCapacity  int     `yaml:"entityCapacity"`  // 实体容量上限
}

// ShipConfig 玩家飞船参数
type ShipConfig struct {
	Size           float64 `yaml:"size"`           // 机身尺寸（机头到中心距离，像素）
	ThrustPower    float64 `yaml:"thrustPower"`    // 推进加速度（像素/秒²）
	TurnSpeed      float64 `yaml:"turnSpeed"`      // 转向角速度（弧度/秒）
	Damping        float64 `yaml:"damping"`        // 每秒速度衰减系数
	ReloadTime     float64 `yaml:"reloadTime"`     // 开火间隔（秒）
	MuzzleSpeed    float64 `yaml:"muzzleSpeed"`    // 子弹出膛速度（像素/秒）
	MuzzleOffset   float64 `yaml:"muzzleOffset"`   // 炮口前置距离（像素）
	Lives          int     `yaml:"lives"`          // 初始生命数
	RespawnDelay   float64 `yaml:"respawnDelay"`   // 阵亡后复活等待（秒）
	InvulnDuration float64 `yaml:"invulnDuration"` // 复活无敌窗口（秒）
	Knockback      float64 `yaml:"knockback"`      // 碰撞击退冲量
}

// BulletConfig 子弹参数
type BulletConfig struct {
	Radius   float64 `yaml:"radius"`   // 碰撞半径（像素）
	Lifetime float64 `yaml:"lifetime"` // 飞行寿命（秒）
}

// TierConfig 单个陨石体型等级的参数
type TierConfig struct {
	Radius      float64 `yaml:"radius"`      // 外接圆半径（像素）
	Mass        float64 `yaml:"mass"`        // 质量（击退冲量按质量折算）
	Score       int     `yaml:"score"`       // 击毁得分
	VertexDrift float64 `yaml:"vertexDrift"` // 轮廓顶点的径向抖动幅度（像素）
}

// WaveConfig 波次导演参数
type WaveConfig struct {
	BaseCount         int     `yaml:"baseCount"`         // 第一波大陨石数量
	CountIncrement    int     `yaml:"countIncrement"`    // 每波递增数量
	SpawnSpeedMax     float64 `yaml:"spawnSpeedMax"`     // 出生速度每轴上限（像素/秒）
	SpeedScalePerWave float64 `yaml:"speedScalePerWave"` // 每波速度放大增量
	SpeedScaleMax     float64 `yaml:"speedScaleMax"`     // 速度放大上限
	SpinMax           float64 `yaml:"spinMax"`           // 出生角速度上限（弧度/秒）
	SafeDistance      float64 `yaml:"safeDistance"`      // 出生点距玩家的最小距离（像素）
	ClearedDelay      float64 `yaml:"clearedDelay"`      // 清空后到下一波的间隔（秒）
	SplitLateralSpeed float64 `yaml:"splitLateralSpeed"` // 分裂子陨石的横向速度偏移（像素/秒）
	VertexCount       int     `yaml:"vertexCount"`       // 陨石轮廓顶点数
	AttractCount      int     `yaml:"attractCount"`      // 主菜单背景漂浮陨石数量
}

// SaucerConfig 飞碟参数
type SaucerConfig struct {
	Radius          float64 `yaml:"radius"`          // 碰撞半径（像素）
	Score           int     `yaml:"score"`           // 击毁得分
	MaxSpeed        float64 `yaml:"maxSpeed"`        // 最大速度（像素/秒）
	MaxAccel        float64 `yaml:"maxAccel"`        // 最大加速度（像素/秒²）
	AvoidDistance   float64 `yaml:"avoidDistance"`   // 躲避陨石的感知距离（像素）
	SpawnInterval   float64 `yaml:"spawnInterval"`   // 常规出现间隔（秒）
	SplitChance     float64 `yaml:"splitChance"`     // 大陨石分裂时出现的概率 [0,1]
	BeamArmDelay    float64 `yaml:"beamArmDelay"`    // 牵引光束蓄力时间（秒）
	BeamReloadMin   float64 `yaml:"beamReloadMin"`   // 光束冷却下限（秒）
	BeamReloadMax   float64 `yaml:"beamReloadMax"`   // 光束冷却上限（秒）
	BeamRange       float64 `yaml:"beamRange"`       // 光束抓取范围（像素）
	BeamMinDistance float64 `yaml:"beamMinDistance"` // 目标陨石距玩家的最小距离（像素）
	ThrowSpeed      float64 `yaml:"throwSpeed"`      // 陨石被甩出的速度（像素/秒）
}

// PowerUpConfig 道具参数
type PowerUpConfig struct {
	DropChance float64            `yaml:"dropChance"` // 陨石击毁时掉落道具的概率 [0,1]
	Radius     float64            `yaml:"radius"`     // 碰撞半径（像素）
	Lifetime   float64            `yaml:"lifetime"`   // 漂浮寿命（秒）
	Weights    map[string]float64 `yaml:"weights"`    // 各道具种类的随机权重
}

// ExplosionConfig 爆炸特效参数
type ExplosionConfig struct {
	Duration     float64 `yaml:"duration"`     // 爆炸寿命（秒）
	GrowthFactor float64 `yaml:"growthFactor"` // 半径每 tick 扩张系数
	ShipRadius   float64 `yaml:"shipRadius"`   // 飞船爆炸初始半径（像素）
	SaucerRadius float64 `yaml:"saucerRadius"` // 飞碟爆炸初始半径（像素）
}

// DebrisConfig 爆炸碎片参数
type DebrisConfig struct {
	MinCount    int     `yaml:"minCount"`    // 单次爆炸的碎片数量下限
	MaxCount    int     `yaml:"maxCount"`    // 单次爆炸的碎片数量上限
	MinLifetime float64 `yaml:"minLifetime"` // 碎片寿命下限（秒）
	MaxLifetime float64 `yaml:"maxLifetime"` // 碎片寿命上限（秒）
	MinLength   float64 `yaml:"minLength"`   // 碎片长度下限（像素）
	MaxLength   float64 `yaml:"maxLength"`   // 碎片长度上限（像素）
	Speed       float64 `yaml:"speed"`       // 碎片散射速度上限（像素/秒）
	SpinMax     float64 `yaml:"spinMax"`     // 碎片自旋角速度上限（弧度/秒）
}

// tierKeys 体型等级在 YAML 中的键名
var tierKeys = map[types.SizeTier]string{
	types.TierLarge:  "large",
	types.TierMedium: "medium",
	types.TierSmall:  "small",
}

// Tier 返回指定体型等级的参数
// 配置经过校验，三个等级必然存在
func (c *GameConfig) Tier(t types.SizeTier) TierConfig {
	return c.Tiers[tierKeys[t]]
}

// Dt 返回固定步长（秒）
func (c *GameConfig) Dt() float64 {
	return 1.0 / c.Loop.TickRate
}

// LoadGameConfig 从嵌入的 YAML 文件加载游戏配置
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析并校验游戏配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return &cfg, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Arena.Width <= 0 || cfg.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %gx%g", cfg.Arena.Width, cfg.Arena.Height)
	}

	if cfg.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tickRate must be positive, got %g", cfg.Loop.TickRate)
	}
	if cfg.Loop.MaxCatchUpSteps < 1 {
		return fmt.Errorf("loop.maxCatchUpSteps must be >= 1, got %d", cfg.Loop.MaxCatchUpSteps)
	}
	if cfg.Loop.EntityCapacity < 64 {
		return fmt.Errorf("loop.entityCapacity must be >= 64, got %d", cfg.Loop.EntityCapacity)
	}

	if cfg.Ship.Lives < 1 {
		return fmt.Errorf("ship.lives must be >= 1, got %d", cfg.Ship.Lives)
	}
	if cfg.Ship.Size <= 0 || cfg.Ship.ThrustPower <= 0 || cfg.Ship.TurnSpeed <= 0 {
		return fmt.Errorf("ship size/thrustPower/turnSpeed must be positive")
	}
	if cfg.Ship.Damping < 0 || cfg.Ship.Damping > 1 {
		return fmt.Errorf("ship.damping must be in [0,1], got %g", cfg.Ship.Damping)
	}
	if cfg.Ship.ReloadTime <= 0 {
		return fmt.Errorf("ship.reloadTime must be positive, got %g", cfg.Ship.ReloadTime)
	}
	if cfg.Ship.RespawnDelay < 0 || cfg.Ship.InvulnDuration < 0 {
		return fmt.Errorf("ship respawnDelay/invulnDuration must be >= 0")
	}

	if cfg.Bullet.Radius <= 0 || cfg.Bullet.Lifetime <= 0 {
		return fmt.Errorf("bullet radius/lifetime must be positive")
	}

	// 三个体型等级必须齐全，半径严格递减
	for _, tier := range types.AllTiers() {
		key := tierKeys[tier]
		tc, ok := cfg.Tiers[key]
		if !ok {
			return fmt.Errorf("tiers.%s is missing", key)
		}
		if tc.Radius <= 0 {
			return fmt.Errorf("tiers.%s.radius must be positive, got %g", key, tc.Radius)
		}
		if tc.Mass <= 0 {
			return fmt.Errorf("tiers.%s.mass must be positive, got %g", key, tc.Mass)
		}
		if tc.Score <= 0 {
			return fmt.Errorf("tiers.%s.score must be positive, got %d", key, tc.Score)
		}
	}
	if cfg.Tier(types.TierLarge).Radius <= cfg.Tier(types.TierMedium).Radius ||
		cfg.Tier(types.TierMedium).Radius <= cfg.Tier(types.TierSmall).Radius {
		return fmt.Errorf("tier radii must strictly decrease from large to small")
	}

	if cfg.Waves.BaseCount < 1 {
		return fmt.Errorf("waves.baseCount must be >= 1, got %d", cfg.Waves.BaseCount)
	}
	if cfg.Waves.CountIncrement < 0 {
		return fmt.Errorf("waves.countIncrement must be >= 0, got %d", cfg.Waves.CountIncrement)
	}
	if cfg.Waves.SpeedScaleMax < 1 {
		return fmt.Errorf("waves.speedScaleMax must be >= 1, got %g", cfg.Waves.SpeedScaleMax)
	}
	if cfg.Waves.SafeDistance <= 0 {
		return fmt.Errorf("waves.safeDistance must be positive, got %g", cfg.Waves.SafeDistance)
	}
	if cfg.Waves.VertexCount < 3 {
		return fmt.Errorf("waves.vertexCount must be >= 3, got %d", cfg.Waves.VertexCount)
	}

	if cfg.Saucer.SplitChance < 0 || cfg.Saucer.SplitChance > 1 {
		return fmt.Errorf("saucer.splitChance must be in [0,1], got %g", cfg.Saucer.SplitChance)
	}
	if cfg.Saucer.BeamRange <= cfg.Saucer.BeamMinDistance {
		return fmt.Errorf("saucer.beamRange (%g) must exceed beamMinDistance (%g)",
			cfg.Saucer.BeamRange, cfg.Saucer.BeamMinDistance)
	}
	if cfg.Saucer.BeamReloadMax < cfg.Saucer.BeamReloadMin {
		return fmt.Errorf("saucer.beamReloadMax (%g) must be >= beamReloadMin (%g)",
			cfg.Saucer.BeamReloadMax, cfg.Saucer.BeamReloadMin)
	}

	if cfg.PowerUps.DropChance < 0 || cfg.PowerUps.DropChance > 1 {
		return fmt.Errorf("powerups.dropChance must be in [0,1], got %g", cfg.PowerUps.DropChance)
	}

	if cfg.Explosion.Duration <= 0 {
		return fmt.Errorf("explosion.duration must be positive, got %g", cfg.Explosion.Duration)
	}
	if cfg.Explosion.GrowthFactor < 1 {
		return fmt.Errorf("explosion.growthFactor must be >= 1, got %g", cfg.Explosion.GrowthFactor)
	}

	if cfg.Debris.MaxCount < cfg.Debris.MinCount {
		return fmt.Errorf("debris.maxCount must be >= minCount")
	}
	if cfg.Debris.MaxLifetime < cfg.Debris.MinLifetime {
		return fmt.Errorf("debris.maxLifetime must be >= minLifetime")
	}

	return nil
}

// Default 返回内置默认配置
// 与 assets/config/game.yaml 保持一致；测试和菜单场景直接使用
func Default() *GameConfig {
	return &GameConfig{
		Arena: ArenaConfig{Width: GameWindowWidth, Height: GameWindowHeight},
		Loop:  LoopConfig{TickRate: 60, MaxCatchUpSteps: 5, EntityCapacity: 2048},
		Ship: ShipConfig{
			Size:           20,
			ThrustPower:    500,
			TurnSpeed:      4.0,
			Damping:        0.6,
			ReloadTime:     0.3,
			MuzzleSpeed:    500,
			MuzzleOffset:   10,
			Lives:          3,
			RespawnDelay:   2.0,
			InvulnDuration: 3.0,
			Knockback:      100,
		},
		Bullet: BulletConfig{Radius: 4, Lifetime: 5.0},
		Tiers: map[string]TierConfig{
			"large":  {Radius: 50, Mass: 8, Score: 20, VertexDrift: 8},
			"medium": {Radius: 25, Mass: 3, Score: 50, VertexDrift: 5},
			"small":  {Radius: 12, Mass: 1, Score: 100, VertexDrift: 3},
		},
		Waves: WaveConfig{
			BaseCount:         4,
			CountIncrement:    1,
			SpawnSpeedMax:     50,
			SpeedScalePerWave: 0.1,
			SpeedScaleMax:     2.0,
			SpinMax:           1.0,
			SafeDistance:      150,
			ClearedDelay:      2.0,
			SplitLateralSpeed: 50,
			VertexCount:       14,
			AttractCount:      5,
		},
		Saucer: SaucerConfig{
			Radius:          15,
			Score:           200,
			MaxSpeed:        120,
			MaxAccel:        180,
			AvoidDistance:   120,
			SpawnInterval:   30,
			SplitChance:     0.7,
			BeamArmDelay:    2.0,
			BeamReloadMin:   4.0,
			BeamReloadMax:   5.0,
			BeamRange:       500,
			BeamMinDistance: 100,
			ThrowSpeed:      250,
		},
		PowerUps: PowerUpConfig{
			DropChance: 0.08,
			Radius:     10,
			Lifetime:   10.0,
			Weights: map[string]float64{
				"extraLife": 1,
				"twinShot":  2,
			},
		},
		Explosion: ExplosionConfig{
			Duration:     0.25,
			GrowthFactor: 1.04,
			ShipRadius:   6,
			SaucerRadius: 15,
		},
		Debris: DebrisConfig{
			MinCount:    4,
			MaxCount:    8,
			MinLifetime: 0.5,
			MaxLifetime: 5.0,
			MinLength:   2,
			MaxLength:   6,
			Speed:       80,
			SpinMax:     10,
		},
	}
}
