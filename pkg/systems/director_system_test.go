package systems

import (
	"testing"

	"github.com/decker502/asteroids/pkg/components"
	"github.com/decker502/asteroids/pkg/config"
	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/entities"
	"github.com/decker502/asteroids/pkg/game"
	"github.com/decker502/asteroids/pkg/types"
	"github.com/decker502/asteroids/pkg/utils"
)

// newDirectorHarness 创建导演测试环境
func newDirectorHarness(seed int64) (*DirectorSystem, *ecs.EntityManager, *game.Session, *config.GameConfig) {
	em := ecs.NewEntityManager()
	cfg := config.Default()
	session := game.NewSession(cfg.Ship.Lives, seed, nil)
	return NewDirectorSystem(em, cfg, session), em, session, cfg
}

// TestNewDirectorSystem_Normal 测试导演初始状态
func TestNewDirectorSystem_Normal(t *testing.T) {
	system, _, _, _ := newDirectorHarness(1)

	if system.State() != DirectorWaitingToStart {
		t.Errorf("Initial state should be WaitingToStart, got %v", system.State())
	}

	t.Logf("✓ Director starts in WaitingToStart")
}

// TestDirectorStartRun 测试对局开始：玩家居中出生，第一波陨石入场
func TestDirectorStartRun(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)

	var started []game.WaveStartedEvent
	ecs.Subscribe(session.Bus(), func(e game.WaveStartedEvent) {
		started = append(started, e)
	})

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	if system.State() != DirectorWaveActive {
		t.Errorf("State after start should be WaveActive, got %v", system.State())
	}
	if session.Wave() != 1 {
		t.Errorf("Session wave should be 1, got %d", session.Wave())
	}

	// 玩家居中出生并带出生保护
	ships := ecs.GetEntitiesWith1[*components.ShipComponent](em)
	if len(ships) != 1 {
		t.Fatalf("Expected 1 ship, got %d", len(ships))
	}
	tf := ecs.MustComponent[*components.TransformComponent](em, ships[0])
	if tf.X != cfg.Arena.Width/2 || tf.Y != cfg.Arena.Height/2 {
		t.Errorf("Ship should spawn at arena center, got (%.1f, %.1f)", tf.X, tf.Y)
	}
	health := ecs.MustComponent[*components.HealthComponent](em, ships[0])
	if !health.Invulnerable() {
		t.Error("Spawned ship should be invulnerable")
	}

	// 第一波数量与层级
	asteroids := ecs.GetEntitiesWith1[*components.AsteroidComponent](em)
	if len(asteroids) != cfg.Waves.BaseCount {
		t.Errorf("Wave 1 should spawn %d asteroids, got %d", cfg.Waves.BaseCount, len(asteroids))
	}
	for _, id := range asteroids {
		ast := ecs.MustComponent[*components.AsteroidComponent](em, id)
		if ast.Tier != types.TierLarge {
			t.Errorf("Wave asteroids should be Large, got %v", ast.Tier)
		}
	}

	if len(started) != 1 || started[0].Wave != 1 || started[0].Count != cfg.Waves.BaseCount {
		t.Errorf("Expected WaveStartedEvent{1, %d}, got %+v", cfg.Waves.BaseCount, started)
	}

	t.Logf("✓ Run starts with centered ship and %d large asteroids", cfg.Waves.BaseCount)
}

// TestDirectorSafeSpawnDistance 测试波次陨石与玩家保持安全距离
func TestDirectorSafeSpawnDistance(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		system, em, _, cfg := newDirectorHarness(seed)

		system.UpdateTimers(1.0 / 60.0)
		em.Commit()

		px, py := cfg.Arena.Width/2, cfg.Arena.Height/2
		for _, id := range ecs.GetEntitiesWith1[*components.AsteroidComponent](em) {
			tf := ecs.MustComponent[*components.TransformComponent](em, id)
			dist := utils.WrappedDistance(tf.X, tf.Y, px, py, cfg.Arena.Width, cfg.Arena.Height)
			if dist < cfg.Waves.SafeDistance {
				t.Errorf("seed %d: asteroid at %.1f px from player, want >= %.1f",
					seed, dist, cfg.Waves.SafeDistance)
			}
		}
	}

	t.Logf("✓ Wave spawns respect the safe distance")
}

// TestDirectorWaveCleared 测试清空后的喘息与下一波放量
func TestDirectorWaveCleared(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)

	var cleared []game.WaveClearedEvent
	ecs.Subscribe(session.Bus(), func(e game.WaveClearedEvent) {
		cleared = append(cleared, e)
	})

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	// 清掉全部陨石
	for _, id := range ecs.GetEntitiesWith1[*components.AsteroidComponent](em) {
		em.DestroyEntity(id)
	}
	system.UpdateCounts()
	em.Commit()

	if system.State() != DirectorWaveClearedPause {
		t.Fatalf("State should be WaveClearedPause, got %v", system.State())
	}
	if len(cleared) != 1 || cleared[0].Wave != 1 {
		t.Errorf("Expected WaveClearedEvent{1}, got %+v", cleared)
	}

	// 喘息未结束时不放下一波
	system.UpdateTimers(cfg.Waves.ClearedDelay / 2)
	em.Commit()
	if system.State() != DirectorWaveClearedPause {
		t.Errorf("Pause should still be running, got %v", system.State())
	}

	// 喘息结束 → 第 2 波，数量递增
	system.UpdateTimers(cfg.Waves.ClearedDelay)
	em.Commit()

	if system.State() != DirectorWaveActive {
		t.Errorf("State should return to WaveActive, got %v", system.State())
	}
	if session.Wave() != 2 {
		t.Errorf("Session wave should be 2, got %d", session.Wave())
	}
	want := cfg.Waves.BaseCount + cfg.Waves.CountIncrement
	got := len(ecs.GetEntitiesWith1[*components.AsteroidComponent](em))
	if got != want {
		t.Errorf("Wave 2 should spawn %d asteroids, got %d", want, got)
	}

	t.Logf("✓ Cleared pause runs %.1fs then wave 2 spawns %d asteroids", cfg.Waves.ClearedDelay, want)
}

// TestDirectorStagedChildrenKeepWaveAlive 测试分裂瞬间不误判清空
// 父陨石已标记销毁、子陨石还在暂存区时，波次必须仍算进行中
func TestDirectorStagedChildrenKeepWaveAlive(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	// 模拟裁决：销毁全部已提交陨石，暂存两颗子陨石（不提交）
	for _, id := range ecs.GetEntitiesWith1[*components.AsteroidComponent](em) {
		em.DestroyEntity(id)
	}
	for i := 0; i < 2; i++ {
		if _, err := entities.NewAsteroid(em, cfg, session.RNG(),
			types.TierMedium, 100, 100, 50, 0, 0); err != nil {
			t.Fatalf("NewAsteroid failed: %v", err)
		}
	}

	system.UpdateCounts()

	if system.State() != DirectorWaveActive {
		t.Errorf("Staged children should keep the wave active, got %v", system.State())
	}

	// 子陨石也被清掉后才算清空
	em.Commit()
	for _, id := range ecs.GetEntitiesWith1[*components.AsteroidComponent](em) {
		em.DestroyEntity(id)
	}
	system.UpdateCounts()
	if system.State() != DirectorWaveClearedPause {
		t.Errorf("Wave should clear once children are gone, got %v", system.State())
	}

	t.Logf("✓ Staged split children keep the wave alive")
}

// TestDirectorWaveSpeedScale 测试波次速度放大系数及其上限
func TestDirectorWaveSpeedScale(t *testing.T) {
	system, _, _, cfg := newDirectorHarness(1)

	if got := system.waveSpeedScale(1); got != 1+cfg.Waves.SpeedScalePerWave {
		t.Errorf("Wave 1 scale: got %.3f, want %.3f", got, 1+cfg.Waves.SpeedScalePerWave)
	}
	if got := system.waveSpeedScale(1000); got != cfg.Waves.SpeedScaleMax {
		t.Errorf("Scale should cap at %.2f, got %.3f", cfg.Waves.SpeedScaleMax, got)
	}

	t.Logf("✓ Speed scale grows per wave and caps at %.2f", cfg.Waves.SpeedScaleMax)
}

// TestDirectorRespawn 测试阵亡后的复活流程
func TestDirectorRespawn(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	// 模拟裁决：玩家阵亡但还有生命
	for _, id := range ecs.GetEntitiesWith1[*components.ShipComponent](em) {
		em.DestroyEntity(id)
	}
	ecs.Publish(session.Bus(), game.ShipDestroyedEvent{LivesLeft: 2, X: 100, Y: 100})
	em.Commit()

	if system.State() != DirectorPlayerRespawning {
		t.Fatalf("State should be PlayerRespawning, got %v", system.State())
	}

	// 等待未满时不复活
	system.UpdateTimers(cfg.Ship.RespawnDelay / 2)
	em.Commit()
	if len(ecs.GetEntitiesWith1[*components.ShipComponent](em)) != 0 {
		t.Error("Ship should not respawn before the delay elapses")
	}

	// 等待期满 → 居中复活，带出生保护
	system.UpdateTimers(cfg.Ship.RespawnDelay)
	em.Commit()

	if system.State() != DirectorWaveActive {
		t.Errorf("State should return to WaveActive, got %v", system.State())
	}
	ships := ecs.GetEntitiesWith1[*components.ShipComponent](em)
	if len(ships) != 1 {
		t.Fatalf("Expected 1 respawned ship, got %d", len(ships))
	}
	tf := ecs.MustComponent[*components.TransformComponent](em, ships[0])
	vel := ecs.MustComponent[*components.VelocityComponent](em, ships[0])
	health := ecs.MustComponent[*components.HealthComponent](em, ships[0])
	if tf.X != cfg.Arena.Width/2 || tf.Y != cfg.Arena.Height/2 {
		t.Errorf("Respawn should be centered, got (%.1f, %.1f)", tf.X, tf.Y)
	}
	if vel.VX != 0 || vel.VY != 0 {
		t.Errorf("Respawned ship should be stationary, got (%.1f, %.1f)", vel.VX, vel.VY)
	}
	if !health.Invulnerable() {
		t.Error("Respawned ship should be invulnerable")
	}

	t.Logf("✓ Respawn waits %.1fs then recreates a protected centered ship", cfg.Ship.RespawnDelay)
}

// TestDirectorNoRespawnOnGameOver 测试生命耗尽时导演不安排复活
func TestDirectorNoRespawnOnGameOver(t *testing.T) {
	system, em, session, _ := newDirectorHarness(1)

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	ecs.Publish(session.Bus(), game.ShipDestroyedEvent{LivesLeft: 0, X: 100, Y: 100})

	if system.State() != DirectorWaveActive {
		t.Errorf("Director should stay in WaveActive on final death, got %v", system.State())
	}

	t.Logf("✓ No respawn scheduled when lives are exhausted")
}

// TestDirectorSaucerSchedule 测试飞碟的常规间隔出场与同屏唯一
func TestDirectorSaucerSchedule(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)

	var spawned int
	ecs.Subscribe(session.Bus(), func(game.SaucerSpawnedEvent) { spawned++ })

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	// 间隔未满：不出场
	system.UpdateTimers(cfg.Saucer.SpawnInterval - 1)
	em.Commit()
	if n := len(ecs.GetEntitiesWith1[*components.SaucerComponent](em)); n != 0 {
		t.Errorf("No saucer expected before the interval, got %d", n)
	}

	// 间隔补满：出场一架
	system.UpdateTimers(1.5)
	em.Commit()
	saucers := ecs.GetEntitiesWith1[*components.SaucerComponent](em)
	if len(saucers) != 1 {
		t.Fatalf("Expected 1 saucer after the interval, got %d", len(saucers))
	}
	if spawned != 1 {
		t.Errorf("Expected 1 SaucerSpawnedEvent, got %d", spawned)
	}

	// 出生在左右边缘
	tf := ecs.MustComponent[*components.TransformComponent](em, saucers[0])
	if tf.X != 0 && tf.X != cfg.Arena.Width-1 {
		t.Errorf("Saucer should enter from a horizontal edge, got x=%.1f", tf.X)
	}

	// 已有飞碟在场：计时不再触发第二架
	system.UpdateTimers(cfg.Saucer.SpawnInterval * 2)
	em.Commit()
	if n := len(ecs.GetEntitiesWith1[*components.SaucerComponent](em)); n != 1 {
		t.Errorf("Only one saucer may be active, got %d", n)
	}

	t.Logf("✓ Saucer enters every %.0fs, one at a time", cfg.Saucer.SpawnInterval)
}

// TestDirectorSaucerOnSplit 测试大陨石分裂摇中后飞碟立即加班
func TestDirectorSaucerOnSplit(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)
	cfg.Saucer.SplitChance = 1.0

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	ecs.Publish(session.Bus(), game.AsteroidDestroyedEvent{
		Tier: types.TierLarge, X: 100, Y: 100, Split: true,
	})

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	if n := len(ecs.GetEntitiesWith1[*components.SaucerComponent](em)); n != 1 {
		t.Errorf("Split roll should summon a saucer immediately, got %d", n)
	}

	// 小陨石击毁（无分裂）不触发
	system2, em2, session2, cfg2 := newDirectorHarness(2)
	cfg2.Saucer.SplitChance = 1.0
	system2.UpdateTimers(1.0 / 60.0)
	em2.Commit()

	ecs.Publish(session2.Bus(), game.AsteroidDestroyedEvent{
		Tier: types.TierSmall, X: 100, Y: 100, Split: false,
	})
	system2.UpdateTimers(1.0 / 60.0)
	em2.Commit()

	if n := len(ecs.GetEntitiesWith1[*components.SaucerComponent](em2)); n != 0 {
		t.Errorf("Small-asteroid kills should not summon a saucer, got %d", n)
	}

	t.Logf("✓ Saucer summons ride on large-asteroid splits only")
}

// TestDirectorPowerUpDrop 测试击毁点道具掉落与权重选种
func TestDirectorPowerUpDrop(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)
	cfg.PowerUps.DropChance = 1.0
	cfg.PowerUps.Weights = map[string]float64{"extraLife": 1, "twinShot": 0}

	var dropped []game.PowerUpDroppedEvent
	ecs.Subscribe(session.Bus(), func(e game.PowerUpDroppedEvent) {
		dropped = append(dropped, e)
	})

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	ecs.Publish(session.Bus(), game.AsteroidDestroyedEvent{
		Tier: types.TierSmall, X: 320, Y: 240, Split: false,
	})
	em.Commit()

	powerUps := ecs.GetEntitiesWith1[*components.PowerUpComponent](em)
	if len(powerUps) != 1 {
		t.Fatalf("DropChance=1 should drop a power-up, got %d", len(powerUps))
	}
	pu := ecs.MustComponent[*components.PowerUpComponent](em, powerUps[0])
	if pu.Kind != types.PowerUpExtraLife {
		t.Errorf("Weights {extraLife:1, twinShot:0} should pick ExtraLife, got %v", pu.Kind)
	}
	tf := ecs.MustComponent[*components.TransformComponent](em, powerUps[0])
	if tf.X != 320 || tf.Y != 240 {
		t.Errorf("Power-up should drop at the kill site, got (%.1f, %.1f)", tf.X, tf.Y)
	}
	if len(dropped) != 1 || dropped[0].Kind != types.PowerUpExtraLife {
		t.Errorf("Expected PowerUpDroppedEvent{ExtraLife}, got %+v", dropped)
	}

	t.Logf("✓ Kills drop weighted power-ups at the kill site")
}

// TestDirectorPowerUpDropDisabled 测试掉落概率为零时不掉落
func TestDirectorPowerUpDropDisabled(t *testing.T) {
	system, em, session, cfg := newDirectorHarness(1)
	cfg.PowerUps.DropChance = 0

	system.UpdateTimers(1.0 / 60.0)
	em.Commit()

	for i := 0; i < 20; i++ {
		ecs.Publish(session.Bus(), game.AsteroidDestroyedEvent{Tier: types.TierSmall, X: 1, Y: 1})
	}
	em.Commit()

	if n := len(ecs.GetEntitiesWith1[*components.PowerUpComponent](em)); n != 0 {
		t.Errorf("DropChance=0 should never drop, got %d", n)
	}

	t.Logf("✓ Zero drop chance drops nothing")
}

// TestDirectorUpdateAttract 测试主菜单背景陨石维持
func TestDirectorUpdateAttract(t *testing.T) {
	system, em, _, cfg := newDirectorHarness(1)

	// 反复调用直至补满
	for i := 0; i < cfg.Waves.AttractCount+2; i++ {
		system.UpdateAttract(1.0 / 60.0)
		em.Commit()
	}

	got := len(ecs.GetEntitiesWith1[*components.AsteroidComponent](em))
	if got != cfg.Waves.AttractCount {
		t.Errorf("Attract mode should maintain %d asteroids, got %d", cfg.Waves.AttractCount, got)
	}

	// 已满后不再追加
	system.UpdateAttract(1.0 / 60.0)
	em.Commit()
	if n := len(ecs.GetEntitiesWith1[*components.AsteroidComponent](em)); n != got {
		t.Errorf("Attract count should stay at %d, got %d", got, n)
	}

	t.Logf("✓ Attract mode tops the field up to %d asteroids", cfg.Waves.AttractCount)
}
