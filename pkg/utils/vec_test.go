package utils

import (
	"math"
	"testing"
)

func TestVecLen(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"零向量", 0, 0, 0},
		{"单位向量", 1, 0, 1},
		{"勾股三元组", 3, 4, 5},
		{"负分量", -3, -4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VecLen(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VecLen(%g, %g) = %g, want %g", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestVecNormalize(t *testing.T) {
	x, y := VecNormalize(3, 4)
	if math.Abs(x-0.6) > 1e-9 || math.Abs(y-0.8) > 1e-9 {
		t.Errorf("VecNormalize(3, 4) = (%g, %g), want (0.6, 0.8)", x, y)
	}

	// 零向量不得返回 NaN
	x, y = VecNormalize(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("VecNormalize(0, 0) = (%g, %g), want (0, 0)", x, y)
	}
}

func TestVecClampLen(t *testing.T) {
	// 长度以内不变
	x, y := VecClampLen(3, 4, 10)
	if x != 3 || y != 4 {
		t.Errorf("Short vector should pass through, got (%g, %g)", x, y)
	}

	// 超长按比例缩短，方向不变
	x, y = VecClampLen(30, 40, 5)
	if math.Abs(x-3) > 1e-9 || math.Abs(y-4) > 1e-9 {
		t.Errorf("VecClampLen(30, 40, 5) = (%g, %g), want (3, 4)", x, y)
	}

	// 零向量原样返回
	x, y = VecClampLen(0, 0, 5)
	if x != 0 || y != 0 {
		t.Errorf("VecClampLen(0, 0, 5) = (%g, %g), want (0, 0)", x, y)
	}
}

func TestHeadingVec(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		wx, wy float64
	}{
		{"朝向 0 指向屏幕上方", 0, 0, -1},
		{"顺时针四分之一圈指向右", math.Pi / 2, 1, 0},
		{"半圈指向下", math.Pi, 0, 1},
		{"四分之三圈指向左", 3 * math.Pi / 2, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := HeadingVec(tt.angle)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("HeadingVec(%g) = (%g, %g), want (%g, %g)", tt.angle, x, y, tt.wx, tt.wy)
			}
		})
	}
}
