package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875},
		{"超出上限", 2.0, 1.0},
		{"低于下限", -1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	if got := EaseOutQuad(0.5); math.Abs(got-0.75) > 0.001 {
		t.Errorf("EaseOutQuad(0.5) = %v, 期望 0.75", got)
	}
	if got := EaseOutQuad(3); got != 1 {
		t.Errorf("EaseOutQuad(3) = %v, 期望 1", got)
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp(10, 20, 0.25) = %v, 期望 12.5", got)
	}
	if got := Clamp01(0.3); got != 0.3 {
		t.Errorf("Clamp01(0.3) = %v", got)
	}
}
