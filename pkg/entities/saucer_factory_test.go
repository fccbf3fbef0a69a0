package entities

import (
	"testing"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

// TestNewSaucer_Normal 测试飞碟创建
func TestNewSaucer_Normal(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()

	entityID, err := NewSaucer(em, cfg, 0, 300)

	if err != nil {
		t.Fatalf("NewSaucer failed: %v", err)
	}

	saucer, ok := ecs.GetComponent[*components.SaucerComponent](em, entityID)
	if !ok {
		t.Fatal("SaucerComponent not found")
	}
	if saucer.MaxSpeed != cfg.Saucer.MaxSpeed {
		t.Errorf("MaxSpeed = %f, want %f", saucer.MaxSpeed, cfg.Saucer.MaxSpeed)
	}
	if saucer.BeamPhase != components.BeamArming {
		t.Error("飞碟入场应处于光束蓄力阶段")
	}
	if saucer.BeamTimer != cfg.Saucer.BeamArmDelay {
		t.Errorf("BeamTimer = %f, want %f", saucer.BeamTimer, cfg.Saucer.BeamArmDelay)
	}

	col, ok := ecs.GetComponent[*components.ColliderComponent](em, entityID)
	if !ok {
		t.Fatal("ColliderComponent not found")
	}
	if col.Faction != types.FactionSaucer {
		t.Errorf("Faction = %v, want Saucer", col.Faction)
	}
	if col.Radius != cfg.Saucer.Radius {
		t.Errorf("Radius = %f, want %f", col.Radius, cfg.Saucer.Radius)
	}

	outline, ok := ecs.GetComponent[*components.OutlineComponent](em, entityID)
	if !ok {
		t.Fatal("OutlineComponent not found")
	}
	if len(outline.Points) < 6 {
		t.Errorf("飞碟轮廓顶点数 = %d, 过于简单", len(outline.Points))
	}
}

// TestNewSaucer_NilDependencies 测试依赖缺失
func TestNewSaucer_NilDependencies(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.Default()

	if _, err := NewSaucer(nil, cfg, 0, 0); err == nil {
		t.Error("nil EntityManager 应返回错误")
	}
	if _, err := NewSaucer(em, nil, 0, 0); err == nil {
		t.Error("nil GameConfig 应返回错误")
	}
}
