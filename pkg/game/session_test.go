package game

import (
	"testing"

	"github.com/decker502/asteroids/pkg/ecs"
	"github.com/decker502/asteroids/pkg/types"
)

func newTestSession() *Session {
	return NewSession(3, 42, ecs.NewEventBus())
}

func TestSessionInitialState(t *testing.T) {
	s := newTestSession()

	if s.Phase() != types.PhaseMenu {
		t.Errorf("expected initial phase Menu, got %v", s.Phase())
	}
	if s.Lives() != 3 {
		t.Errorf("expected 3 lives, got %d", s.Lives())
	}
	if s.Score() != 0 {
		t.Errorf("expected score 0, got %d", s.Score())
	}
	if s.Wave() != 0 {
		t.Errorf("expected wave 0, got %d", s.Wave())
	}
}

func TestSessionTransitionDeferredUntilProcess(t *testing.T) {
	s := newTestSession()

	s.RequestTransition(types.PhasePlaying)
	if s.Phase() != types.PhaseMenu {
		t.Error("transition must not take effect before ProcessTransitions")
	}

	s.ProcessTransitions()
	if s.Phase() != types.PhasePlaying {
		t.Errorf("expected Playing after processing, got %v", s.Phase())
	}
}

func TestSessionLegalTransitionChain(t *testing.T) {
	s := newTestSession()

	steps := []types.Phase{
		types.PhasePlaying,
		types.PhasePaused,
		types.PhasePlaying,
		types.PhaseGameOver,
		types.PhaseMenu,
	}
	for _, to := range steps {
		s.RequestTransition(to)
		s.ProcessTransitions()
		if s.Phase() != to {
			t.Fatalf("expected phase %v, got %v", to, s.Phase())
		}
	}
}

func TestSessionIllegalTransitionIgnored(t *testing.T) {
	s := newTestSession()

	// Menu 不能直接进入 Paused 或 GameOver
	s.RequestTransition(types.PhasePaused)
	s.RequestTransition(types.PhaseGameOver)
	s.ProcessTransitions()
	if s.Phase() != types.PhaseMenu {
		t.Errorf("illegal transitions should be ignored, got %v", s.Phase())
	}

	// 重复请求当前阶段也是空操作
	s.RequestTransition(types.PhaseMenu)
	s.ProcessTransitions()
	if s.Phase() != types.PhaseMenu {
		t.Errorf("self transition should be a no-op, got %v", s.Phase())
	}
}

func TestSessionQueuedTransitionsApplyInOrder(t *testing.T) {
	s := newTestSession()

	// 同一边界上排队的连续合法切换按顺序全部生效
	s.RequestTransition(types.PhasePlaying)
	s.RequestTransition(types.PhasePaused)
	s.ProcessTransitions()

	if s.Phase() != types.PhasePaused {
		t.Errorf("expected Paused after queued chain, got %v", s.Phase())
	}
}

func TestSessionHasPendingTransition(t *testing.T) {
	s := newTestSession()
	s.RequestTransition(types.PhasePlaying)
	s.ProcessTransitions()

	if s.HasPendingTransition(types.PhaseGameOver) {
		t.Error("no GameOver request should be pending yet")
	}

	s.RequestTransition(types.PhaseGameOver)
	if !s.HasPendingTransition(types.PhaseGameOver) {
		t.Error("GameOver request should be visible before processing")
	}

	s.ProcessTransitions()
	if s.HasPendingTransition(types.PhaseGameOver) {
		t.Error("pending queue should be drained after processing")
	}
}

func TestSessionTogglePause(t *testing.T) {
	s := newTestSession()
	s.RequestTransition(types.PhasePlaying)
	s.ProcessTransitions()

	s.TogglePause()
	s.ProcessTransitions()
	if s.Phase() != types.PhasePaused {
		t.Errorf("expected Paused after toggle, got %v", s.Phase())
	}

	s.TogglePause()
	s.ProcessTransitions()
	if s.Phase() != types.PhasePlaying {
		t.Errorf("expected Playing after second toggle, got %v", s.Phase())
	}

	// Menu 阶段的暂停请求被忽略
	s2 := newTestSession()
	s2.TogglePause()
	s2.ProcessTransitions()
	if s2.Phase() != types.PhaseMenu {
		t.Errorf("pause toggle in Menu should be ignored, got %v", s2.Phase())
	}
}

func TestSessionScore(t *testing.T) {
	bus := ecs.NewEventBus()
	var events []ScoreChangedEvent
	ecs.Subscribe(bus, func(e ScoreChangedEvent) {
		events = append(events, e)
	})

	s := NewSession(3, 1, bus)
	s.AddScore(20)
	s.AddScore(100)
	s.AddScore(0)
	s.AddScore(-5)

	if s.Score() != 120 {
		t.Errorf("expected score 120, got %d", s.Score())
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 score events, got %d", len(events))
	}
	if events[1].Delta != 100 || events[1].Total != 120 {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestSessionLives(t *testing.T) {
	s := newTestSession()

	if left := s.LoseLife(); left != 2 {
		t.Errorf("expected 2 lives left, got %d", left)
	}
	s.LoseLife()
	if left := s.LoseLife(); left != 0 {
		t.Errorf("expected 0 lives left, got %d", left)
	}
	// 不会降到负数
	if left := s.LoseLife(); left != 0 {
		t.Errorf("lives must not go negative, got %d", left)
	}

	s.GainLife()
	if s.Lives() != 1 {
		t.Errorf("expected 1 life after gain, got %d", s.Lives())
	}

	for i := 0; i < 20; i++ {
		s.GainLife()
	}
	if s.Lives() != MaxLives {
		t.Errorf("lives must cap at %d, got %d", MaxLives, s.Lives())
	}
}

func TestSessionSeededRNGReproducible(t *testing.T) {
	a := NewSession(3, 99, ecs.NewEventBus())
	b := NewSession(3, 99, ecs.NewEventBus())

	for i := 0; i < 32; i++ {
		if a.RNG().Float64() != b.RNG().Float64() {
			t.Fatal("same seed must produce identical random sequences")
		}
	}
}
