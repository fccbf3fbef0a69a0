package entities

import (
	"testing"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// TestNewPowerUp_Normal 测试道具创建
func TestNewPowerUp_Normal(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()

	entityID, err := NewPowerUp(em, cfg, types.PowerUpTwinShot, 300, 200, 5, -5)

	if err != nil {
		t.Fatalf("NewPowerUp failed: %v", err)
	}

	pu, ok := ecs.GetComponent[*components.PowerUpComponent](em, entityID)
	if !ok {
		t.Fatal("PowerUpComponent not found")
	}
	if pu.Kind != types.PowerUpTwinShot {
		t.Errorf("Kind = %v, want TwinShot", pu.Kind)
	}

	col, ok := ecs.GetComponent[*components.ColliderComponent](em, entityID)
	if !ok {
		t.Fatal("ColliderComponent not found")
	}
	if col.Faction != types.FactionPowerUp {
		t.Errorf("Faction = %v, want PowerUp", col.Faction)
	}

	lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, entityID)
	if !ok {
		t.Fatal("LifetimeComponent not found")
	}
	if lt.MaxLifetime != cfg.PowerUps.Lifetime {
		t.Errorf("MaxLifetime = %f, want %f", lt.MaxLifetime, cfg.PowerUps.Lifetime)
	}

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, entityID)
	if vel.VX != 5 || vel.VY != -5 {
		t.Errorf("Velocity = (%f, %f), want (5, -5)", vel.VX, vel.VY)
	}
}

// TestNewPowerUp_NilDependencies 测试依赖缺失
func TestNewPowerUp_NilDependencies(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()

	if _, err := NewPowerUp(nil, cfg, types.PowerUpExtraLife, 0, 0, 0, 0); err == nil {
		t.Error("nil EntityManager 应返回错误")
	}
	if _, err := NewPowerUp(em, nil, types.PowerUpExtraLife, 0, 0, 0, 0); err == nil {
		t.Error("nil GameConfig 应返回错误")
	}
}
