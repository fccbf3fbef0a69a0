package systems

import (
	"sort"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

// CollisionPair 一对发生碰撞的实体，按 ID 升序规范化（A < B）
type CollisionPair struct {
	A, B ecs.EntityID
}

// pairKey 无序阵营对的规范化键（小枚举值在前）
func pairKey(a, b types.Faction) [2]types.Faction {
	if a > b {
		a, b = b, a
	}
	return [2]types.Faction{a, b}
}

// makePairSet 构建阵营对过滤表
func makePairSet(pairs ...[2]types.Faction) map[[2]types.Faction]struct{} {
	set := make(map[[2]types.Faction]struct{}, len(pairs))
	for _, p := range pairs {
		set[pairKey(p[0], p[1])] = struct{}{}
	}
	return set
}

// collidablePairs 有效碰撞的阵营组合
// 表外组合（陨石×陨石、子弹×子弹等）在粗筛后直接丢弃
var collidablePairs = makePairSet(
	[2]types.Faction{types.FactionBullet, types.FactionAsteroid},
	[2]types.Faction{types.FactionBullet, types.FactionSaucer},
	[2]types.Faction{types.FactionPlayer, types.FactionAsteroid},
	[2]types.Faction{types.FactionPlayer, types.FactionDebris},
	[2]types.Faction{types.FactionPlayer, types.FactionPowerUp},
	[2]types.Faction{types.FactionPlayer, types.FactionSaucer},
)

// CollisionSystem 碰撞检测系统
// 粗筛用均匀网格把候选对压到近似线性，窄相做环绕感知的圆-圆相交，
// 阵营对过滤表决定哪些组合有效。输出去重后按 ID 序排列，
// 保证同一 tick 的检测结果与遍历顺序无关
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
	grid          *SpatialGrid

	// 复用的结果缓冲
	pairs []CollisionPair
	seen  map[CollisionPair]struct{}
}

// NewCollisionSystem 创建碰撞检测系统
// 网格边长取最大碰撞直径，保证相交的两圆必然同格或相邻格
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.GameConfig) *CollisionSystem {
	maxRadius := cfg.Ship.Size
	for _, tier := range types.AllTiers() {
		if r := cfg.Tier(tier).Radius; r > maxRadius {
			maxRadius = r
		}
	}
	if cfg.Saucer.Radius > maxRadius {
		maxRadius = cfg.Saucer.Radius
	}

	return &CollisionSystem{
		entityManager: em,
		config:        cfg,
		grid:          NewSpatialGrid(cfg.Arena.Width, cfg.Arena.Height, maxRadius*2),
		seen:          make(map[CollisionPair]struct{}),
	}
}

// Detect 检测本 tick 的所有碰撞对
// 返回的切片在下次调用时被复用，调用方不得跨 tick 持有
func (s *CollisionSystem) Detect() []CollisionPair {
	s.pairs = s.pairs[:0]
	for k := range s.seen {
		delete(s.seen, k)
	}

	ids := ecs.GetEntitiesWith2[*components.ColliderComponent,
		*components.TransformComponent](s.entityManager)

	if s.grid.Degenerate() {
		// 战场太小放不下网格时退化为全量两两检测
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				s.test(ids[i], ids[j])
			}
		}
	} else {
		s.grid.Reset()
		for _, id := range ids {
			tf := ecs.MustComponent[*components.TransformComponent](s.entityManager, id)
			s.grid.Insert(id, tf.X, tf.Y)
		}
		s.grid.ForEachCandidatePair(s.test)
	}

	sort.Slice(s.pairs, func(i, j int) bool {
		if s.pairs[i].A != s.pairs[j].A {
			return s.pairs[i].A < s.pairs[j].A
		}
		return s.pairs[i].B < s.pairs[j].B
	})
	return s.pairs
}

// test 窄相检测一对候选实体，命中则记入结果
func (s *CollisionSystem) test(a, b ecs.EntityID) {
	if a == b {
		return
	}
	// 本 tick 已标记销毁的实体不再参与碰撞
	if s.entityManager.IsDestroyed(a) || s.entityManager.IsDestroyed(b) {
		return
	}

	colA, okA := ecs.GetComponent[*components.ColliderComponent](s.entityManager, a)
	colB, okB := ecs.GetComponent[*components.ColliderComponent](s.entityManager, b)
	if !okA || !okB {
		return
	}

	// 阵营对过滤
	if _, allowed := collidablePairs[pairKey(colA.Faction, colB.Faction)]; !allowed {
		return
	}

	// 出生忽略期（分裂兄弟、被光束甩出的陨石）
	if colA.IgnoreTicks > 0 && colA.IgnoreEntity == b {
		return
	}
	if colB.IgnoreTicks > 0 && colB.IgnoreEntity == a {
		return
	}

	tfA := ecs.MustComponent[*components.TransformComponent](s.entityManager, a)
	tfB := ecs.MustComponent[*components.TransformComponent](s.entityManager, b)

	sum := colA.Radius + colB.Radius
	distSq := utils.WrappedDistanceSq(tfA.X, tfA.Y, tfB.X, tfB.Y,
		s.config.Arena.Width, s.config.Arena.Height)
	if distSq >= sum*sum {
		return
	}

	pair := CollisionPair{A: a, B: b}
	if pair.A > pair.B {
		pair.A, pair.B = pair.B, pair.A
	}
	if _, dup := s.seen[pair]; dup {
		return
	}
	s.seen[pair] = struct{}{}
	s.pairs = append(s.pairs, pair)
}
