package utils

import (
	"math"
	"testing"
)

func TestEasingBoundaries(t *testing.T) {
	// 所有缓动函数在 t=0 处为 0，在 t=1 处为 1
	funcs := map[string]func(float64) float64{
		"EaseLinear":   EaseLinear,
		"EaseOutCubic": EaseOutCubic,
		"EaseOutQuad":  EaseOutQuad,
		"EaseInQuad":   EaseInQuad,
	}

	for name, fn := range funcs {
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %g, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %g, want 1", name, got)
		}
	}
}

func TestEaseOutFasterThanLinearEarly(t *testing.T) {
	// 缓出曲线前段应快于线性
	if EaseOutCubic(0.3) <= EaseLinear(0.3) {
		t.Error("EaseOutCubic should be ahead of linear at t=0.3")
	}
	if EaseOutQuad(0.3) <= EaseLinear(0.3) {
		t.Error("EaseOutQuad should be ahead of linear at t=0.3")
	}
}

func TestPulseWaveRange(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := PulseWave(float64(i)*0.05, 1.2)
		if v < 0 || v > 1 {
			t.Fatalf("PulseWave out of range at sample %d: %g", i, v)
		}
	}

	// period <= 0 时退化为常量 1
	if PulseWave(0.5, 0) != 1 {
		t.Error("PulseWave with zero period should return 1")
	}
}
