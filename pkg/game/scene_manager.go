package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
)

// SceneManager 管理自上而下排列的页面分区
//
// 负责分区布局、按滚动位置更新可见性、把指针事件分发到所在分区，
// 并把每个分区绘制到对应的离屏图像后合成到屏幕。
type SceneManager struct {
	sections  []SectionScene
	navigator *Navigator
	top       float64 // 分区区域在窗口中的起点（导航栏下方）

	viewW, viewH float64
	visible      map[string]bool
	focused      bool
	hovered      SectionScene
	dragging     SectionScene
	dragTop      float64 // 拖动开始时分区顶部的页面坐标

	buffers map[string]*ebiten.Image
}

// NewSceneManager creates and returns a new SceneManager instance.
//
// 参数：
//   - navigator: 页面导航器，分区布局会同步给它
//   - top: 分区区域相对窗口顶部的偏移
func NewSceneManager(navigator *Navigator, top float64) *SceneManager {
	return &SceneManager{
		navigator: navigator,
		top:       top,
		visible:   make(map[string]bool),
		focused:   true,
		buffers:   make(map[string]*ebiten.Image),
	}
}

// Add 追加一个分区到页面底部
func (sm *SceneManager) Add(scene SectionScene) {
	sm.sections = append(sm.sections, scene)
	if sm.viewW > 0 {
		sm.Layout(sm.viewW, sm.viewH+sm.top)
	}
}

// Sections 所有分区
func (sm *SceneManager) Sections() []SectionScene {
	return sm.sections
}

// Get 按 ID 查找分区
func (sm *SceneManager) Get(id string) SectionScene {
	for _, s := range sm.sections {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// Navigator 返回页面导航器
func (sm *SceneManager) Navigator() *Navigator {
	return sm.navigator
}

// Layout 按窗口尺寸重新排列分区
func (sm *SceneManager) Layout(windowW, windowH float64) {
	sm.viewW = windowW
	sm.viewH = windowH - sm.top

	bounds := make([]SectionBounds, 0, len(sm.sections))
	y := 0.0
	for _, s := range sm.sections {
		h := s.Height(sm.viewW, sm.viewH)
		s.Resize(sm.viewW, h)
		if ws, ok := s.(WindowSizer); ok {
			ws.SetWindowSize(windowW, windowH)
		}
		bounds = append(bounds, SectionBounds{ID: s.ID(), Top: y, Height: h})
		y += h
	}
	sm.navigator.SetSections(bounds, sm.viewH)
	logging.Named("SceneManager").Debugf("Layout %.0fx%.0f, page height %.0f", sm.viewW, sm.viewH, y)
	sm.refreshVisibility()
}

// SetFocused 窗口焦点变化；失去焦点时所有分区暂停
func (sm *SceneManager) SetFocused(focused bool) {
	if sm.focused == focused {
		return
	}
	sm.focused = focused
	if !focused {
		sm.PointerLeft()
	}
	sm.refreshVisibility()
}

// Visible 分区当前是否可见
func (sm *SceneManager) Visible(id string) bool {
	return sm.visible[id]
}

// Update 推进滚动动画并更新可见分区
func (sm *SceneManager) Update(deltaTime float64) {
	sm.navigator.Advance(deltaTime)
	sm.refreshVisibility()
	for _, s := range sm.sections {
		if sm.visible[s.ID()] {
			s.Update(deltaTime)
		}
	}
}

func (sm *SceneManager) refreshVisibility() {
	for _, s := range sm.sections {
		id := s.ID()
		v := sm.focused && sm.navigator.Visible(id)
		if prev, ok := sm.visible[id]; ok && prev == v {
			continue
		}
		sm.visible[id] = v
		s.SetVisible(v)
	}
}

// SectionAt 窗口坐标处的分区及分区局部坐标
func (sm *SceneManager) SectionAt(x, y float64) (SectionScene, float64, float64) {
	if y < sm.top {
		return nil, 0, 0
	}
	pageY := y - sm.top + sm.navigator.Offset()
	for _, b := range sm.navigator.Sections() {
		if pageY >= b.Top && pageY < b.Top+b.Height {
			return sm.Get(b.ID), x, pageY - b.Top
		}
	}
	return nil, 0, 0
}

// PointerMoved 把指针移动分发到所在分区，离开的分区收到 PointerLeft
func (sm *SceneManager) PointerMoved(x, y float64) {
	s, lx, ly := sm.SectionAt(x, y)
	if sm.hovered != nil && sm.hovered != s {
		if h, ok := sm.hovered.(PointerHandler); ok {
			h.PointerLeft()
		}
	}
	sm.hovered = s
	if h, ok := s.(PointerHandler); ok {
		h.PointerMoved(lx, ly)
	}
}

// PointerLeft 指针离开窗口
func (sm *SceneManager) PointerLeft() {
	if h, ok := sm.hovered.(PointerHandler); ok {
		h.PointerLeft()
	}
	sm.hovered = nil
}

// Clicked 把点击分发到所在分区；覆盖层显示时只交给覆盖层
func (sm *SceneManager) Clicked(x, y float64) {
	if o := sm.ActiveOverlay(); o != nil {
		o.OverlayClicked(x, y)
		return
	}
	s, lx, ly := sm.SectionAt(x, y)
	if h, ok := s.(PointerHandler); ok {
		h.Clicked(lx, ly)
	}
}

// Wheel 滚轮：分区未消费时滚动页面
func (sm *SceneManager) Wheel(x, y, dy float64) {
	if sm.ActiveOverlay() != nil {
		return
	}
	s, lx, ly := sm.SectionAt(x, y)
	if h, ok := s.(WheelHandler); ok && h.Wheel(lx, ly, dy) {
		return
	}
	sm.navigator.ScrollBy(dy)
}

// DragStart 拖动开始：记录按下位置所在分区，之后的拖动都交给它
func (sm *SceneManager) DragStart(x, y float64) {
	if sm.ActiveOverlay() != nil {
		return
	}
	s, lx, ly := sm.SectionAt(x, y)
	h, ok := s.(DragHandler)
	if !ok {
		return
	}
	b, _ := sm.navigator.Section(s.ID())
	sm.dragging = s
	sm.dragTop = b.Top
	h.DragStart(lx, ly)
}

// DragMove 拖动中，坐标换算到拖动开始时的分区（可以超出分区范围）
func (sm *SceneManager) DragMove(x, y float64) {
	h, ok := sm.dragging.(DragHandler)
	if !ok {
		return
	}
	h.DragMove(x, y-sm.top+sm.navigator.Offset()-sm.dragTop)
}

// DragEnd 拖动结束
func (sm *SceneManager) DragEnd() {
	if h, ok := sm.dragging.(DragHandler); ok {
		h.DragEnd()
	}
	sm.dragging = nil
}

// ActiveOverlay 当前显示中的覆盖层
func (sm *SceneManager) ActiveOverlay() Overlay {
	for _, s := range sm.sections {
		if o, ok := s.(Overlay); ok && o.OverlayActive() {
			return o
		}
	}
	return nil
}

// Draw 绘制可见分区和覆盖层
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	sm.DrawSections(screen)
	sm.DrawOverlay(screen)
}

// DrawSections 只绘制可见分区（导航栏绘制在分区和覆盖层之间）
func (sm *SceneManager) DrawSections(screen *ebiten.Image) {
	offset := sm.navigator.Offset()
	for _, b := range sm.navigator.Sections() {
		if !sm.navigator.Visible(b.ID) {
			continue
		}
		s := sm.Get(b.ID)
		buf := sm.buffer(b.ID, int(sm.viewW), int(b.Height))
		if buf == nil {
			continue
		}
		s.Draw(buf)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, sm.top+b.Top-offset)
		screen.DrawImage(buf, op)
	}
}

// DrawOverlay 绘制当前覆盖层
func (sm *SceneManager) DrawOverlay(screen *ebiten.Image) {
	if o := sm.ActiveOverlay(); o != nil {
		o.DrawOverlay(screen)
	}
}

// buffer 复用分区离屏图像，尺寸变化时重建
func (sm *SceneManager) buffer(id string, w, h int) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	buf := sm.buffers[id]
	if buf != nil {
		b := buf.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return buf
		}
		buf.Deallocate()
	}
	buf = ebiten.NewImage(w, h)
	sm.buffers[id] = buf
	return buf
}

// Close 关闭所有分区
func (sm *SceneManager) Close() {
	for _, s := range sm.sections {
		s.Close()
	}
	for id, buf := range sm.buffers {
		buf.Deallocate()
		delete(sm.buffers, id)
	}
}
