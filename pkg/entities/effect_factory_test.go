package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// TestNewExplosion_Normal 测试爆炸特效创建
func TestNewExplosion_Normal(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()

	entityID, err := NewExplosion(em, cfg, 250, 180, 50)

	if err != nil {
		t.Fatalf("NewExplosion failed: %v", err)
	}

	exp, ok := ecs.GetComponent[*components.ExplosionComponent](em, entityID)
	if !ok {
		t.Fatal("ExplosionComponent not found")
	}
	if exp.Radius != 50 {
		t.Errorf("Radius = %f, want 50", exp.Radius)
	}
	if exp.Duration != cfg.Explosion.Duration {
		t.Errorf("Duration = %f, want %f", exp.Duration, cfg.Explosion.Duration)
	}
	if exp.Age != 0 {
		t.Errorf("Age = %f, want 0", exp.Age)
	}

	// 爆炸不参与碰撞
	if _, ok := ecs.GetComponent[*components.ColliderComponent](em, entityID); ok {
		t.Error("爆炸特效不应有碰撞体")
	}
}

// TestNewDebrisBurst_Normal 测试碎片四散创建
func TestNewDebrisBurst_Normal(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(3))

	ids, err := NewDebrisBurst(em, cfg, rng, 100, 100, 10, -10)

	if err != nil {
		t.Fatalf("NewDebrisBurst failed: %v", err)
	}
	if len(ids) < cfg.Debris.MinCount || len(ids) > cfg.Debris.MaxCount {
		t.Errorf("碎片数量 = %d, 应在 [%d, %d] 内", len(ids), cfg.Debris.MinCount, cfg.Debris.MaxCount)
	}

	for _, id := range ids {
		if _, ok := ecs.GetComponent[*components.DebrisComponent](em, id); !ok {
			t.Fatalf("碎片 %d 缺少 DebrisComponent", id)
		}

		col, ok := ecs.GetComponent[*components.ColliderComponent](em, id)
		if !ok {
			t.Fatalf("碎片 %d 缺少 ColliderComponent", id)
		}
		if col.Faction != types.FactionDebris {
			t.Errorf("碎片 %d Faction = %v, want Debris", id, col.Faction)
		}

		lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
		if !ok {
			t.Fatalf("碎片 %d 缺少 LifetimeComponent", id)
		}
		if lt.MaxLifetime < cfg.Debris.MinLifetime || lt.MaxLifetime > cfg.Debris.MaxLifetime {
			t.Errorf("碎片 %d 寿命 %f 超出配置窗口", id, lt.MaxLifetime)
		}

		tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if tf.X != 100 || tf.Y != 100 {
			t.Errorf("碎片 %d 应从爆心出发, got (%f, %f)", id, tf.X, tf.Y)
		}
	}
}

// TestNewDebrisBurst_CapacityExhausted 测试容量耗尽时只创建部分碎片
func TestNewDebrisBurst_CapacityExhausted(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(3))

	// 容量只够两个实体
	em := ecs.NewEntityManagerWithCapacity(64)
	for i := 0; i < 62; i++ {
		em.CreateEntity()
	}

	ids, err := NewDebrisBurst(em, cfg, rng, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewDebrisBurst failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("容量剩余2时应创建2个碎片, got %d", len(ids))
	}
}

// TestNewDebrisBurst_NilDependencies 测试依赖缺失
func TestNewDebrisBurst_NilDependencies(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))

	if _, err := NewDebrisBurst(nil, cfg, rng, 0, 0, 0, 0); err == nil {
		t.Error("nil EntityManager 应返回错误")
	}
	if _, err := NewDebrisBurst(em, nil, rng, 0, 0, 0, 0); err == nil {
		t.Error("nil GameConfig 应返回错误")
	}
	if _, err := NewDebrisBurst(em, cfg, nil, 0, 0, 0, 0); err == nil {
		t.Error("nil 随机源应返回错误")
	}
}
