package game

import (
	"math"
	"testing"
)

func newTestNavigator() *Navigator {
	n := NewNavigator(60)
	n.SetSections([]SectionBounds{
		{ID: "hero", Top: 0, Height: 700},
		{ID: "showcase", Top: 700, Height: 900},
		{ID: "clients", Top: 1600, Height: 800},
	}, 700)
	return n
}

// TestNavigatorScrollTo 弹簧动画最终停在分区顶部
func TestNavigatorScrollTo(t *testing.T) {
	n := newTestNavigator()

	if !n.ScrollTo("showcase") {
		t.Fatal("ScrollTo(showcase) returned false")
	}
	if n.Target() != 700 {
		t.Errorf("target: got %v, want 700", n.Target())
	}

	for i := 0; i < 300; i++ {
		n.Update()
	}
	if n.Offset() != 700 {
		t.Errorf("offset should settle at 700, got %v", n.Offset())
	}
	if n.Current() != "showcase" {
		t.Errorf("current section: got %s, want showcase", n.Current())
	}
}

func TestNavigatorScrollToUnknown(t *testing.T) {
	n := newTestNavigator()
	if n.ScrollTo("pricing") {
		t.Error("ScrollTo should fail for unknown section")
	}
	if n.Target() != 0 {
		t.Errorf("target changed to %v", n.Target())
	}
}

// TestNavigatorClamp 最后一个分区的目标夹紧到页面底部
func TestNavigatorClamp(t *testing.T) {
	n := newTestNavigator()

	n.ScrollTo("clients")
	if n.Target() != 1600 {
		t.Errorf("target: got %v, want 1600", n.Target())
	}

	n.ScrollBy(10000)
	if n.Target() != n.MaxOffset() || n.MaxOffset() != 1700 {
		t.Errorf("target should clamp to max offset 1700, got %v (max %v)", n.Target(), n.MaxOffset())
	}
	n.ScrollBy(-10000)
	if n.Target() != 0 {
		t.Errorf("target should clamp to 0, got %v", n.Target())
	}
}

func TestNavigatorLock(t *testing.T) {
	n := newTestNavigator()
	n.Lock()

	n.ScrollBy(300)
	if n.ScrollTo("clients") || n.Target() != 0 {
		t.Error("locked navigator should ignore scrolling")
	}

	n.Unlock()
	n.ScrollBy(300)
	if n.Target() != 300 {
		t.Errorf("unlocked target: got %v, want 300", n.Target())
	}
}

func TestNavigatorVisible(t *testing.T) {
	n := newTestNavigator()
	if !n.Visible("hero") || n.Visible("showcase") {
		t.Error("only hero should be visible at offset 0")
	}

	n.JumpTo("showcase")
	n.ScrollBy(-100)
	for i := 0; i < 300; i++ {
		n.Update()
	}
	if !n.Visible("hero") || !n.Visible("showcase") || n.Visible("clients") {
		t.Errorf("at offset %v expected hero and showcase visible", n.Offset())
	}
}

// TestNavigatorSpringSmooth 滚动过程中不越过目标太多（临界阻尼）
func TestNavigatorSpringSmooth(t *testing.T) {
	n := newTestNavigator()
	n.ScrollTo("clients")

	prev := 0.0
	for i := 0; i < 120; i++ {
		n.Update()
		if n.Offset() < prev-1e-9 {
			t.Fatalf("offset moved backwards at frame %d: %v -> %v", i, prev, n.Offset())
		}
		if n.Offset() > 1600+1 {
			t.Fatalf("offset overshot target: %v", n.Offset())
		}
		prev = n.Offset()
	}
	if math.Abs(n.Offset()-1600) > 1 {
		t.Errorf("expected to be near 1600 after 2s, got %v", n.Offset())
	}
}

func TestNavigatorResizeClamps(t *testing.T) {
	n := newTestNavigator()
	n.JumpTo("clients")

	// 页面变短后偏移量夹紧
	n.SetSections([]SectionBounds{{ID: "hero", Top: 0, Height: 700}, {ID: "clients", Top: 700, Height: 500}}, 700)
	if n.Offset() != 500 || n.Target() != 500 {
		t.Errorf("expected clamp to 500, got offset=%v target=%v", n.Offset(), n.Target())
	}
}

func TestNavigatorAdvanceVariableStep(t *testing.T) {
	n := NewNavigator(60)
	n.SetSections([]SectionBounds{
		{ID: "hero", Top: 0, Height: 600},
		{ID: "showcase", Top: 600, Height: 600},
	}, 600)
	n.ScrollTo("showcase")

	// 144Hz 下推进 5 秒
	for i := 0; i < 720; i++ {
		n.Advance(1.0 / 144.0)
	}
	if n.Offset() != 600 {
		t.Errorf("expected offset to settle at 600, got %.2f", n.Offset())
	}

	n.Advance(0)
	if n.Offset() != 600 {
		t.Error("zero step should not move")
	}
}
