package systems

import (
	"math"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/components"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/config"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/ecs"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/game"
	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/surface"
)

// blobStops 光斑径向渐变的透明度曲线（乘以实体 Opacity）
var blobStops = [...]struct{ offset, alpha float64 }{
	{0, 1},
	{0.3, 0.7},
	{0.6, 0.3},
	{1, 0},
}

// FieldRenderSystem 把动画场绘制到 Surface
//
// 绘制顺序：清屏 → 指针光晕 → 连线 → 实体。只读 FieldState，不修改任何状态。
type FieldRenderSystem struct {
	state *game.FieldState

	// 复用缓冲
	points []*components.PointComponent
	fades  []float64
	stops  []surface.GradientStop
}

// NewFieldRenderSystem 创建绘制系统
func NewFieldRenderSystem(state *game.FieldState) *FieldRenderSystem {
	return &FieldRenderSystem{state: state}
}

// Draw 绘制一帧；表面不可用时直接返回
func (s *FieldRenderSystem) Draw(surf surface.Surface) {
	if !surface.Usable(surf) {
		return
	}
	v := s.state.Variant
	w, h := surf.Size()

	s.clear(surf, v.Background, float32(w), float32(h))
	s.collect()

	if v.Pointer.Glow.Enabled && s.state.Pointer.Engaged {
		s.drawGlow(surf, v.Pointer.Glow, float64(max(w, h)))
	}
	if v.Links.Distance > 0 && v.Links.Opacity > 0 {
		s.drawLinks(surf, v.Links)
	}

	for i, p := range s.points {
		s.drawEntity(surf, v.Render, p, s.fades[i])
	}
}

func (s *FieldRenderSystem) clear(surf surface.Surface, bg config.BackgroundConfig, w, h float32) {
	switch bg.Clear {
	case config.ClearFade:
		surf.FillRect(0, 0, w, h, bg.Color.WithAlpha(bg.FadeAlpha))
	case config.ClearTransparent:
		surf.Clear()
	default:
		surf.Fill(bg.Color.WithAlpha(1))
	}
}

// collect 按实体 ID 顺序收集可见实体及其寿命衰减系数
func (s *FieldRenderSystem) collect() {
	em := s.state.Entities
	s.points = s.points[:0]
	s.fades = s.fades[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.PointComponent](em) {
		p, _ := ecs.GetComponent[*components.PointComponent](em, id)
		fade := 1.0
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
			fade = lt.Remaining(s.state.Timing.Elapsed)
		}
		s.points = append(s.points, p)
		s.fades = append(s.fades, fade)
	}
}

func (s *FieldRenderSystem) drawGlow(surf surface.Surface, glow config.GlowConfig, extent float64) {
	if len(glow.Stops) == 0 {
		return
	}
	s.stops = s.stops[:0]
	for _, stop := range glow.Stops {
		s.stops = append(s.stops, surface.GradientStop{Offset: stop.Offset, Color: stop.Color.WithAlpha(stop.Alpha)})
	}
	ptr := s.state.Pointer
	surf.FillRadialGradient(float32(ptr.X), float32(ptr.Y), float32(extent*glow.RadiusFactor), s.stops)
}

// drawLinks 距离小于 T 的实体对之间画线，透明度 (1-d/T)*opacity
func (s *FieldRenderSystem) drawLinks(surf surface.Surface, links config.LinkConfig) {
	for i := 0; i < len(s.points); i++ {
		a := s.points[i]
		for j := i + 1; j < len(s.points); j++ {
			b := s.points[j]
			alpha, ok := LinkAlpha(math.Hypot(b.X-a.X, b.Y-a.Y), links)
			if !ok {
				continue
			}
			surf.StrokeLine(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
				float32(links.Width), links.Color.WithAlpha(alpha))
		}
	}
}

// LinkAlpha 连线透明度；距离不小于阈值时不画线
func LinkAlpha(d float64, links config.LinkConfig) (float64, bool) {
	if d >= links.Distance {
		return 0, false
	}
	return (1 - d/links.Distance) * links.Opacity, true
}

func (s *FieldRenderSystem) drawEntity(surf surface.Surface, r config.RenderConfig, p *components.PointComponent, fade float64) {
	switch r.Shape {
	case config.ShapeBlob:
		op := p.Opacity * fade
		s.stops = s.stops[:0]
		for _, stop := range blobStops {
			s.stops = append(s.stops, surface.GradientStop{Offset: stop.offset, Color: r.Color.WithAlpha(op * stop.alpha)})
		}
		surf.FillRadialGradient(float32(p.X), float32(p.Y), float32(p.Radius), s.stops)

	case config.ShapeStreak:
		speed := math.Hypot(p.VX, p.VY)
		if speed == 0 {
			surf.FillCircle(float32(p.X), float32(p.Y), float32(r.Width)/2, r.Color.WithAlpha(p.Opacity*fade))
			return
		}
		// 尾部沿速度反方向延伸 Length
		tx := p.X - p.VX/speed*p.Length
		ty := p.Y - p.VY/speed*p.Length
		surf.StrokeGradientLine(float32(tx), float32(ty), float32(p.X), float32(p.Y), float32(r.Width),
			r.Color.WithAlpha(0), r.Color.WithAlpha(p.Opacity*fade))

	default:
		alpha := r.Alpha
		if alpha == 0 {
			alpha = p.Opacity
		}
		surf.FillCircle(float32(p.X), float32(p.Y), float32(p.Radius), r.Color.WithAlpha(alpha*fade))
	}
}

