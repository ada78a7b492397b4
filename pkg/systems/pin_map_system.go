package systems

import (
	"fmt"
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/internal/logging"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
)

// 地图缩放范围
const (
	MinMapZoom = 1.0
	MaxMapZoom = 4.0
)

// PinMapSystem 客户地图：图钉脉冲动画
// 交互（悬停、缩放、拖动、放置）由场景调用本文件中的函数完成
type PinMapSystem struct {
	entityManager *ecs.EntityManager
}

// NewPinMapSystem 创建地图系统
func NewPinMapSystem(em *ecs.EntityManager) *PinMapSystem {
	return &PinMapSystem{entityManager: em}
}

// NewPinMapEntity 根据配置创建地图实体
func NewPinMapEntity(em *ecs.EntityManager, cfg *config.ClientsConfig, viewW, viewH float64) ecs.EntityID {
	pins := make([]config.ClientLocation, len(cfg.Locations))
	copy(pins, cfg.Locations)

	m := &components.PinMapComponent{
		Pins:        pins,
		AspectRatio: cfg.AspectRatio,
		Zoom:        MinMapZoom,
		Hovered:     -1,
		ToolVisible: true,
		Readout:     components.PinMapReadoutHint,
	}
	LayoutPinMap(m, viewW, viewH)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, m)
	return id
}

// Update 推进图钉脉冲动画（1 秒一个周期）
func (s *PinMapSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.PinMapComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.PinMapComponent](s.entityManager, id)
		m.Pulse = math.Mod(m.Pulse+deltaTime, 1)
	}
}

// LayoutPinMap 按视口尺寸重新计算地图基准区域，缩放和平移重置
func LayoutPinMap(m *components.PinMapComponent, viewW, viewH float64) {
	m.ViewW, m.ViewH = viewW, viewH
	w, h := viewW, viewW/m.AspectRatio
	if h > viewH {
		h = viewH
		w = viewH * m.AspectRatio
	}
	m.BaseW, m.BaseH = w, h
	m.BaseX = (viewW - w) / 2
	m.BaseY = (viewH - h) / 2
	m.Zoom = MinMapZoom
	m.PanX, m.PanY = 0, 0
}

// MapRect 当前显示的地图区域（视口坐标）
func MapRect(m *components.PinMapComponent) (x, y, w, h float64) {
	return m.BaseX + m.PanX, m.BaseY + m.PanY, m.BaseW * m.Zoom, m.BaseH * m.Zoom
}

// PinPosition 图钉在视口中的位置
func PinPosition(m *components.PinMapComponent, i int) (float64, float64) {
	x, y, w, h := MapRect(m)
	return x + m.Pins[i].XPercent/100*w, y + m.Pins[i].YPercent/100*h
}

// PinAt 判定半径内距离 (x, y) 最近的图钉，没有则返回 -1
func PinAt(m *components.PinMapComponent, x, y float64) int {
	best, bestDist := -1, config.PinHitRadius
	for i := range m.Pins {
		px, py := PinPosition(m, i)
		if d := math.Hypot(px-x, py-y); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ZoomMapAt 以 (cx, cy) 为中心缩放，光标下的地图点保持不动
func ZoomMapAt(m *components.PinMapComponent, cx, cy, factor float64) {
	x, y, w, h := MapRect(m)
	u, v := (cx-x)/w, (cy-y)/h

	m.Zoom = math.Max(MinMapZoom, math.Min(MaxMapZoom, m.Zoom*factor))
	nw, nh := m.BaseW*m.Zoom, m.BaseH*m.Zoom
	m.PanX = cx - u*nw - m.BaseX
	m.PanY = cy - v*nh - m.BaseY
	clampPan(m)
}

// PanMap 拖动地图
func PanMap(m *components.PinMapComponent, dx, dy float64) {
	m.PanX += dx
	m.PanY += dy
	clampPan(m)
}

// clampPan 放大后的地图始终覆盖基准区域
func clampPan(m *components.PinMapComponent) {
	minX := m.BaseW - m.BaseW*m.Zoom
	minY := m.BaseH - m.BaseH*m.Zoom
	m.PanX = math.Max(minX, math.Min(0, m.PanX))
	m.PanY = math.Max(minY, math.Min(0, m.PanY))
}

// PlaceSelectedPin 把选中的图钉移动到 (x, y)，位置四舍五入到 0.1%
//
// 返回：
//   - string: 读数，格式 "<name> → left: x%; top: y%;"
//   - bool: (x, y) 不在地图上或没有可放置的图钉时返回 false
func PlaceSelectedPin(m *components.PinMapComponent, x, y float64) (string, bool) {
	if !m.ToolVisible || m.Selected < 0 || m.Selected >= len(m.Pins) {
		return "", false
	}
	mx, my, w, h := MapRect(m)
	if x < mx || x > mx+w || y < my || y > my+h {
		return "", false
	}

	xPct := roundTenth((x - mx) / w * 100)
	yPct := roundTenth((y - my) / h * 100)
	pin := &m.Pins[m.Selected]
	pin.XPercent, pin.YPercent = xPct, yPct

	code := fmt.Sprintf("left: %.1f%%; top: %.1f%%;", xPct, yPct)
	m.Readout = fmt.Sprintf("%s → %s", pin.Label, code)
	logging.Named("PinTool").Infof("%s -> %s", pin.Label, code)
	return m.Readout, true
}

// SelectPin 切换放置工具选中的图钉（循环）
func SelectPin(m *components.PinMapComponent, delta int) {
	n := len(m.Pins)
	if n == 0 {
		return
	}
	m.Selected = ((m.Selected+delta)%n + n) % n
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
