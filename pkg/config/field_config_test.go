package config

import (
	"strings"
	"testing"
	"time"
)

const heroYAML = `
name: hero
count: 80
velocity: { mode: uniform, spread: 1.5 }
baseline: 0.02
pointer:
  mode: continuous
  radius: 200
  strength: 2
  glow:
    enabled: true
    stops:
      - { offset: 0, color: "#464646", alpha: 0.2 }
      - { offset: 1, color: "#000000", alpha: 0 }
boundary: { policy: wrap, margin: 10 }
links: { distance: 120, opacity: 0.15, color: "#ffffff" }
render: { shape: dot, color: "#ffffff", alpha: 0.8 }
adaptive: { enabled: true }
`

func TestParseFieldVariantDefaults(t *testing.T) {
	v, err := ParseFieldVariant([]byte(heroYAML))
	if err != nil {
		t.Fatalf("ParseFieldVariant() error: %v", err)
	}

	if v.Damping != 0.98 {
		t.Errorf("Damping default: got %v, want 0.98", v.Damping)
	}
	if v.Background.Clear != ClearFull {
		t.Errorf("Clear default: got %q, want %q", v.Background.Clear, ClearFull)
	}
	if v.Resize != ResizeReinit {
		t.Errorf("Resize default: got %q, want %q", v.Resize, ResizeReinit)
	}
	if v.Pointer.Glow.RadiusFactor != 0.5 {
		t.Errorf("Glow radius factor default: got %v, want 0.5", v.Pointer.Glow.RadiusFactor)
	}

	// 自适应质量默认值：50fps / 40 个 / ×0.7 / 1 秒
	a := v.Adaptive
	if a.MinFPS != 50 || a.Floor != 40 || a.Factor != 0.7 || a.Window != time.Second {
		t.Errorf("Adaptive defaults wrong: %+v", a)
	}

	if got := v.Pointer.Glow.Stops[0].Color.Hex(); got != "#464646" {
		t.Errorf("Glow stop color: got %s, want #464646", got)
	}
}

func TestParseFieldVariantDurations(t *testing.T) {
	v, err := ParseFieldVariant([]byte(`
name: trails
click: { enabled: true, count: 6, delay: 4s, lifetime: 2500ms }
`))
	if err != nil {
		t.Fatalf("ParseFieldVariant() error: %v", err)
	}
	if v.Click.Delay != 4*time.Second {
		t.Errorf("Delay: got %v, want 4s", v.Click.Delay)
	}
	if v.Click.Lifetime != 2500*time.Millisecond {
		t.Errorf("Lifetime: got %v, want 2.5s", v.Click.Lifetime)
	}
}

func TestParseFieldVariantErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing name", "count: 3", "name is required"},
		{"bad color", "name: x\nrender: { color: \"#zzz\" }", "invalid color"},
		{"bad damping", "name: x\ndamping: 1.5", "damping"},
		{"unknown boundary", "name: x\nboundary: { policy: bounce }", "unknown boundary policy"},
		{"pointer without radius", "name: x\npointer: { mode: impulse }", "pointer radius"},
		{"click without delay", "name: x\nclick: { enabled: true, count: 3 }", "click delay"},
		{"click without count", "name: x\nclick: { enabled: true, delay: 1s }", "click count"},
		{"adaptive factor", "name: x\nadaptive: { enabled: true, factor: 1.2 }", "adaptive factor"},
		{"link opacity", "name: x\nlinks: { distance: 10, opacity: 2 }", "links"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFieldVariant([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRangeLerp(t *testing.T) {
	r := Range{Min: 1.2, Max: 3.2}
	if got := r.Lerp(0); got != 1.2 {
		t.Errorf("Lerp(0) = %v", got)
	}
	if got := r.Lerp(1); got != 3.2 {
		t.Errorf("Lerp(1) = %v", got)
	}
	if !(Range{}).IsZero() || r.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestHexColorWithAlpha(t *testing.T) {
	c := MustHex("#ff8000")
	got := c.WithAlpha(0.5)
	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 128 {
		t.Errorf("WithAlpha(0.5) = %+v", got)
	}
	if c.WithAlpha(-1).A != 0 || c.WithAlpha(3).A != 255 {
		t.Error("alpha should be clamped to [0, 255]")
	}
}
