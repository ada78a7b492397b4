package scenes

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/systems"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/utils"
)

// 客户分区布局
const (
	clientsTitle       = "Our Clients"
	clientsTitleHeight = 96.0
	clientsPanelHeight = 88.0

	// mapZoomBase 滚轮一格的缩放倍数
	mapZoomBase = 1.2
	pinRadius   = 6.0
)

var (
	colorMapSea   = color32(14, 22, 38)
	colorMapGrid  = color32(40, 60, 92)
	colorPin      = colorAccent
	colorPanel    = color32(20, 20, 26)
	colorSelected = color32(120, 200, 255)
)

// PinStore 图钉位置持久化（SettingsManager）
type PinStore interface {
	Pin(label string) (game.PinPosition, bool)
	SetPin(label string, x, y float64)
	ResetPins()
	Save() error
}

// ClientsScene 客户世界地图分区
//
// 地图支持悬停显示客户名、滚轮缩放、拖动平移；按 P 切换图钉放置工具，
// 工具打开时点击地图把选中的图钉移动到点击位置并保存。
type ClientsScene struct {
	entityManager *ecs.EntityManager
	pinMapSystem  *systems.PinMapSystem
	mapID         ecs.EntityID

	defaults []config.ClientLocation
	store    PinStore

	w, h   float64
	mapTop float64
}

// NewClientsScene 创建客户分区
//
// 参数：
//   - cfg: 客户位置配置
//   - store: 图钉位置存储，可为 nil
func NewClientsScene(cfg *config.ClientsConfig, store PinStore) *ClientsScene {
	em := ecs.NewEntityManager()
	s := &ClientsScene{
		entityManager: em,
		pinMapSystem:  systems.NewPinMapSystem(em),
		mapID:         systems.NewPinMapEntity(em, cfg, 0, 0),
		defaults:      append([]config.ClientLocation(nil), cfg.Locations...),
		store:         store,
		mapTop:        clientsTitleHeight,
	}
	m := s.pinMap()
	m.ToolVisible = false
	if store != nil {
		for i := range m.Pins {
			if p, ok := store.Pin(m.Pins[i].Label); ok {
				m.Pins[i].XPercent, m.Pins[i].YPercent = p.X, p.Y
			}
		}
	}
	return s
}

// ID 分区标识
func (s *ClientsScene) ID() string { return config.SectionClients }

// Height 占满一个视口
func (s *ClientsScene) Height(_, viewH float64) float64 { return viewH }

// PinMap 地图状态
func (s *ClientsScene) PinMap() *components.PinMapComponent { return s.pinMap() }

func (s *ClientsScene) pinMap() *components.PinMapComponent {
	m, _ := ecs.GetComponent[*components.PinMapComponent](s.entityManager, s.mapID)
	return m
}

// Resize 重新布局地图，缩放和平移重置
func (s *ClientsScene) Resize(w, h float64) {
	s.w, s.h = w, h
	systems.LayoutPinMap(s.pinMap(), w, math.Max(1, h-s.mapTop-clientsPanelHeight))
}

// SetVisible 地图没有需要暂停的时钟
func (s *ClientsScene) SetVisible(bool) {}

// Update 推进图钉脉冲
func (s *ClientsScene) Update(deltaTime float64) {
	s.pinMapSystem.Update(deltaTime)
}

// mapLocal 分区坐标转换为地图视口坐标
func (s *ClientsScene) mapLocal(x, y float64) (float64, float64) {
	return x, y - s.mapTop
}

// PointerMoved 悬停图钉
func (s *ClientsScene) PointerMoved(x, y float64) {
	m := s.pinMap()
	mx, my := s.mapLocal(x, y)
	m.Hovered = systems.PinAt(m, mx, my)
}

// PointerLeft 清除悬停
func (s *ClientsScene) PointerLeft() {
	s.pinMap().Hovered = -1
}

// Clicked 工具打开时放置选中的图钉，否则选中点击的图钉
func (s *ClientsScene) Clicked(x, y float64) {
	m := s.pinMap()
	mx, my := s.mapLocal(x, y)

	if !m.ToolVisible {
		if i := systems.PinAt(m, mx, my); i >= 0 {
			m.Selected = i
		}
		return
	}

	if _, ok := systems.PlaceSelectedPin(m, mx, my); !ok {
		return
	}
	if s.store == nil {
		return
	}
	pin := m.Pins[m.Selected]
	s.store.SetPin(pin.Label, pin.XPercent, pin.YPercent)
	if err := s.store.Save(); err != nil {
		logging.Named("PinTool").Warnf("Failed to save pin %s: %v", pin.Label, err)
	}
}

// Wheel 地图上的滚轮用于缩放，其他位置交给页面滚动
func (s *ClientsScene) Wheel(x, y, dy float64) bool {
	m := s.pinMap()
	mx, my := s.mapLocal(x, y)
	rx, ry, rw, rh := m.BaseX, m.BaseY, m.BaseW, m.BaseH
	if !pointInRect(mx, my, rx, ry, rw, rh) {
		return false
	}
	systems.ZoomMapAt(m, mx, my, math.Pow(mapZoomBase, -dy/config.WheelScrollStep))
	return true
}

// DragStart 在地图上按下开始平移
func (s *ClientsScene) DragStart(x, y float64) {
	m := s.pinMap()
	mx, my := s.mapLocal(x, y)
	if !pointInRect(mx, my, m.BaseX, m.BaseY, m.BaseW, m.BaseH) {
		return
	}
	m.Dragging = true
	m.DragLastX, m.DragLastY = mx, my
}

// DragMove 平移地图
func (s *ClientsScene) DragMove(x, y float64) {
	m := s.pinMap()
	if !m.Dragging {
		return
	}
	mx, my := s.mapLocal(x, y)
	systems.PanMap(m, mx-m.DragLastX, my-m.DragLastY)
	m.DragLastX, m.DragLastY = mx, my
}

// DragEnd 结束平移
func (s *ClientsScene) DragEnd() {
	s.pinMap().Dragging = false
}

// KeyPressed 图钉工具快捷键
//
//	P          打开/关闭放置工具
//	Tab / →    选择下一个图钉
//	←          选择上一个图钉
//	R          恢复默认位置
//	Esc        关闭放置工具
func (s *ClientsScene) KeyPressed(key ebiten.Key) bool {
	m := s.pinMap()
	switch key {
	case ebiten.KeyP:
		m.ToolVisible = !m.ToolVisible
		if m.ToolVisible {
			m.Readout = components.PinMapReadoutHint
		}
		return true
	case ebiten.KeyEscape:
		if !m.ToolVisible {
			return false
		}
		m.ToolVisible = false
		return true
	}

	if !m.ToolVisible {
		return false
	}
	switch key {
	case ebiten.KeyTab, ebiten.KeyArrowRight:
		systems.SelectPin(m, 1)
	case ebiten.KeyArrowLeft:
		systems.SelectPin(m, -1)
	case ebiten.KeyR:
		s.ResetPins()
	default:
		return false
	}
	return true
}

// ResetPins 恢复配置中的图钉位置并清除保存的位置
func (s *ClientsScene) ResetPins() {
	m := s.pinMap()
	copy(m.Pins, s.defaults)
	m.Readout = components.PinMapReadoutHint
	if s.store == nil {
		return
	}
	s.store.ResetPins()
	if err := s.store.Save(); err != nil {
		logging.Named("PinTool").Warnf("Failed to save pin reset: %v", err)
	}
}

// Close 释放地图实体
func (s *ClientsScene) Close() {
	s.entityManager.DestroyAll()
}

// Draw 绘制标题、地图、图钉和工具面板
func (s *ClientsScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBlack)
	utils.DrawTextCentered(screen, clientsTitle, utils.MustUIFace(36), s.w/2, clientsTitleHeight/2, colorText)

	m := s.pinMap()
	if m == nil || m.BaseW <= 0 {
		return
	}

	// 缩放后的地图裁剪到基准区域
	clip := image.Rect(int(m.BaseX), int(s.mapTop+m.BaseY), int(m.BaseX+m.BaseW), int(s.mapTop+m.BaseY+m.BaseH))
	mapImg, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}
	s.drawMap(mapImg, m)
	s.drawPins(mapImg, m)
	s.drawTooltip(screen, m)
	s.drawPanel(screen, m)
}

func (s *ClientsScene) drawMap(dst *ebiten.Image, m *components.PinMapComponent) {
	x, y, w, h := systems.MapRect(m)
	y += s.mapTop
	fillRect(dst, x, y, w, h, colorMapSea)
	for i := 1; i < 12; i++ {
		gx := float32(x + w*float64(i)/12)
		vector.StrokeLine(dst, gx, float32(y), gx, float32(y+h), 1, colorMapGrid, false)
	}
	for i := 1; i < 6; i++ {
		gy := float32(y + h*float64(i)/6)
		vector.StrokeLine(dst, float32(x), gy, float32(x+w), gy, 1, colorMapGrid, false)
	}
	strokeRect(dst, m.BaseX, s.mapTop+m.BaseY, m.BaseW, m.BaseH, 1, colorMapGrid)
}

func (s *ClientsScene) drawPins(dst *ebiten.Image, m *components.PinMapComponent) {
	ring := utils.EaseOutQuad(m.Pulse)
	for i := range m.Pins {
		px, py := systems.PinPosition(m, i)
		cx, cy := float32(px), float32(py+s.mapTop)
		vector.StrokeCircle(dst, cx, cy, float32(pinRadius+14*ring), 2, withAlpha(colorPin, 1-m.Pulse), true)
		vector.DrawFilledCircle(dst, cx, cy, pinRadius, colorPin, true)
		if m.ToolVisible && i == m.Selected {
			vector.StrokeCircle(dst, cx, cy, pinRadius+4, 2, colorSelected, true)
		}
	}
}

func (s *ClientsScene) drawTooltip(screen *ebiten.Image, m *components.PinMapComponent) {
	i := m.Hovered
	if i < 0 && !m.ToolVisible && m.Selected >= 0 && m.Selected < len(m.Pins) {
		i = m.Selected
	}
	if i < 0 || i >= len(m.Pins) {
		return
	}
	face := utils.MustUIFace(16)
	label := m.Pins[i].Label
	if m.Pins[i].Country != "" {
		label += ", " + m.Pins[i].Country
	}
	px, py := systems.PinPosition(m, i)
	w := utils.MeasureText(label, face) + 16
	x := math.Max(0, math.Min(s.w-w, px-w/2))
	y := py + s.mapTop - pinRadius - 36
	fillRect(screen, x, y, w, 28, colorPanel)
	utils.DrawText(screen, label, face, x+8, y+5, colorText)
}

func (s *ClientsScene) drawPanel(screen *ebiten.Image, m *components.PinMapComponent) {
	y := s.h - clientsPanelHeight
	fillRect(screen, 0, y, s.w, clientsPanelHeight, colorPanel)
	face := utils.MustUIFace(16)
	if !m.ToolVisible {
		utils.DrawText(screen, "Scroll to zoom, drag to pan. Press P to position pins.", face, 24, y+16, colorTextMuted)
		return
	}
	name := ""
	if m.Selected >= 0 && m.Selected < len(m.Pins) {
		name = m.Pins[m.Selected].Label
	}
	utils.DrawText(screen, "Pin tool: < "+name+" >   (Tab/arrows select, R reset, Esc close)", face, 24, y+12, colorAccent)
	for i, line := range utils.WrapText(m.Readout, face, s.w-48) {
		if i > 1 {
			break
		}
		utils.DrawText(screen, line, face, 24, y+38+float64(i)*22, colorText)
	}
}
