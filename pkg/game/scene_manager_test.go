package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockSection is a mock implementation of the SectionScene interface for testing.
type MockSection struct {
	id      string
	height  float64
	visible bool
	updates int
	closed  bool
	w, h    float64

	moves   int
	left    int
	clicks  [][2]float64
	lastX   float64
	lastY   float64
	zoomed  bool
	consume bool
}

func (m *MockSection) ID() string                          { return m.id }
func (m *MockSection) Height(viewW, viewH float64) float64 { return m.height }
func (m *MockSection) Resize(w, h float64)                 { m.w, m.h = w, h }
func (m *MockSection) SetVisible(visible bool)             { m.visible = visible }
func (m *MockSection) Close()                              { m.closed = true }
func (m *MockSection) Update(deltaTime float64)            { m.updates++ }
func (m *MockSection) Draw(screen *ebiten.Image)           {}

func (m *MockSection) PointerMoved(x, y float64) {
	m.moves++
	m.lastX, m.lastY = x, y
}
func (m *MockSection) PointerLeft()         { m.left++ }
func (m *MockSection) Clicked(x, y float64) { m.clicks = append(m.clicks, [2]float64{x, y}) }
func (m *MockSection) Wheel(x, y, dy float64) bool {
	m.zoomed = m.consume
	return m.consume
}

func newTestManager() (*SceneManager, *MockSection, *MockSection, *MockSection) {
	sm := NewSceneManager(NewNavigator(60), 50)
	hero := &MockSection{id: "hero", height: 650}
	showcase := &MockSection{id: "showcase", height: 800}
	clients := &MockSection{id: "clients", height: 700}
	sm.Add(hero)
	sm.Add(showcase)
	sm.Add(clients)
	sm.Layout(1000, 700)
	return sm, hero, showcase, clients
}

// TestSceneManagerLayout 分区自上而下排列
func TestSceneManagerLayout(t *testing.T) {
	sm, hero, showcase, _ := newTestManager()

	sections := sm.Navigator().Sections()
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[1].Top != 650 || sections[2].Top != 1450 {
		t.Errorf("unexpected tops: %+v", sections)
	}
	if hero.w != 1000 || showcase.h != 800 {
		t.Errorf("sections not resized: hero w=%v, showcase h=%v", hero.w, showcase.h)
	}
	if got := sm.Navigator().MaxOffset(); got != 2150-650 {
		t.Errorf("max offset: got %v, want 1500", got)
	}
}

// TestSceneManagerVisibility 只有与视口相交的分区可见并被更新
func TestSceneManagerVisibility(t *testing.T) {
	sm, hero, showcase, clients := newTestManager()

	if !hero.visible || showcase.visible || clients.visible {
		t.Errorf("initial visibility: hero=%v showcase=%v clients=%v", hero.visible, showcase.visible, clients.visible)
	}

	sm.Update(0.016)
	if hero.updates != 1 || showcase.updates != 0 {
		t.Errorf("expected only hero updated, got hero=%d showcase=%d", hero.updates, showcase.updates)
	}

	sm.Navigator().JumpTo("clients")
	sm.Update(0.016)
	if hero.visible || !clients.visible {
		t.Errorf("after jump: hero=%v clients=%v", hero.visible, clients.visible)
	}
}

func TestSceneManagerFocus(t *testing.T) {
	sm, hero, _, _ := newTestManager()

	sm.SetFocused(false)
	if hero.visible {
		t.Error("unfocused window should hide all sections")
	}
	sm.Update(0.016)
	if hero.updates != 0 {
		t.Error("hidden section should not be updated")
	}

	sm.SetFocused(true)
	if !hero.visible {
		t.Error("refocused window should show hero again")
	}
}

// TestSceneManagerPointerDispatch 指针事件转换为分区局部坐标
func TestSceneManagerPointerDispatch(t *testing.T) {
	sm, hero, showcase, _ := newTestManager()

	// 导航栏区域不属于任何分区
	if s, _, _ := sm.SectionAt(10, 20); s != nil {
		t.Errorf("nav bar area should not hit a section, got %s", s.ID())
	}

	sm.PointerMoved(100, 150)
	if hero.moves != 1 || hero.lastY != 100 {
		t.Errorf("hero should receive local y=100, got moves=%d y=%v", hero.moves, hero.lastY)
	}

	sm.Navigator().JumpTo("showcase")
	sm.PointerMoved(100, 150)
	if hero.left != 1 {
		t.Error("hero should receive PointerLeft when pointer moves to another section")
	}
	if showcase.moves != 1 || showcase.lastY != 100 {
		t.Errorf("showcase should receive local y=100, got moves=%d y=%v", showcase.moves, showcase.lastY)
	}

	sm.Clicked(30, 60)
	if len(showcase.clicks) != 1 || showcase.clicks[0] != [2]float64{30, 10} {
		t.Errorf("unexpected clicks %v", showcase.clicks)
	}

	sm.PointerLeft()
	if showcase.left != 1 {
		t.Error("showcase should receive PointerLeft when pointer leaves window")
	}
}

func TestSceneManagerWheel(t *testing.T) {
	sm, _, _, clients := newTestManager()

	sm.Wheel(100, 100, 120)
	if sm.Navigator().Target() != 120 {
		t.Errorf("unconsumed wheel should scroll page, target=%v", sm.Navigator().Target())
	}

	sm.Navigator().JumpTo("clients")
	clients.consume = true
	before := sm.Navigator().Target()
	sm.Wheel(100, 100, 120)
	if !clients.zoomed || sm.Navigator().Target() != before {
		t.Error("consumed wheel should not scroll page")
	}
}

func TestSceneManagerClose(t *testing.T) {
	sm, hero, showcase, clients := newTestManager()
	sm.Close()
	if !hero.closed || !showcase.closed || !clients.closed {
		t.Error("Close should close every section")
	}
}

// MockOverlaySection 带覆盖层的分区
type MockOverlaySection struct {
	MockSection
	active        bool
	overlayClicks int
}

func (m *MockOverlaySection) OverlayActive() bool              { return m.active }
func (m *MockOverlaySection) DrawOverlay(screen *ebiten.Image) {}
func (m *MockOverlaySection) OverlayClicked(x, y float64)      { m.overlayClicks++ }

// TestSceneManagerOverlayCapturesInput 覆盖层显示时点击和滚轮不再分发给分区
func TestSceneManagerOverlayCapturesInput(t *testing.T) {
	sm := NewSceneManager(NewNavigator(60), 0)
	hero := &MockSection{id: "hero", height: 600}
	modal := &MockOverlaySection{MockSection: MockSection{id: "showcase", height: 600}}
	sm.Add(hero)
	sm.Add(modal)
	sm.Layout(800, 600)

	modal.active = true
	if sm.ActiveOverlay() == nil {
		t.Fatal("expected an active overlay")
	}
	sm.Clicked(100, 100)
	if modal.overlayClicks != 1 || len(hero.clicks) != 0 {
		t.Errorf("click should go to overlay only: overlay=%d hero=%d", modal.overlayClicks, len(hero.clicks))
	}
	sm.Wheel(100, 100, 300)
	if sm.Navigator().Target() != 0 {
		t.Errorf("wheel should not scroll while overlay is active, target=%v", sm.Navigator().Target())
	}

	modal.active = false
	sm.Clicked(100, 100)
	if len(hero.clicks) != 1 {
		t.Errorf("click should reach hero after overlay closes, got %d", len(hero.clicks))
	}
}

// MockDragSection 可拖动的分区
type MockDragSection struct {
	MockSection
	starts [][2]float64
	moves  [][2]float64
	ended  int
}

func (m *MockDragSection) DragStart(x, y float64) { m.starts = append(m.starts, [2]float64{x, y}) }
func (m *MockDragSection) DragMove(x, y float64)  { m.moves = append(m.moves, [2]float64{x, y}) }
func (m *MockDragSection) DragEnd()               { m.ended++ }

// TestSceneManagerDrag 拖动始终交给按下位置所在的分区
func TestSceneManagerDrag(t *testing.T) {
	sm := NewSceneManager(NewNavigator(60), 50)
	hero := &MockSection{id: "hero", height: 600}
	clients := &MockDragSection{MockSection: MockSection{id: "clients", height: 600}}
	sm.Add(hero)
	sm.Add(clients)
	sm.Layout(800, 650)

	// 没有实现 DragHandler 的分区忽略拖动
	sm.DragStart(100, 100)
	sm.DragMove(120, 100)
	sm.DragEnd()
	if len(clients.starts) != 0 || len(clients.moves) != 0 {
		t.Fatal("drag on hero should not reach clients")
	}

	sm.Navigator().JumpTo("clients")
	sm.DragStart(100, 150)
	if len(clients.starts) != 1 || clients.starts[0] != [2]float64{100, 100} {
		t.Fatalf("unexpected drag start: %v", clients.starts)
	}
	// 超出分区顶部的位置仍然交给 clients，局部坐标为负
	sm.DragMove(100, 20)
	if len(clients.moves) != 1 || clients.moves[0] != [2]float64{100, -30} {
		t.Errorf("unexpected drag move: %v", clients.moves)
	}
	sm.DragEnd()
	sm.DragMove(0, 0)
	if clients.ended != 1 || len(clients.moves) != 1 {
		t.Errorf("drag should end once and stop routing: ended=%d moves=%d", clients.ended, len(clients.moves))
	}
}
