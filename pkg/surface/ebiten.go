package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientSegments 径向渐变每圈的分段数
const gradientSegments = 48

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenSurface 把 Surface 调用转换为 Ebitengine 绘制
type EbitenSurface struct {
	img *ebiten.Image

	// 顶点缓冲复用，避免每帧分配
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenSurface 包装一个 ebiten.Image；img 为 nil 时返回的表面不可用
func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Reset 切换绘制目标（每帧复用同一个 EbitenSurface）
func (s *EbitenSurface) Reset(img *ebiten.Image) {
	s.img = img
}

// Image 返回底层图像
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

func (s *EbitenSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Clear() {
	s.img.Clear()
}

func (s *EbitenSurface) Fill(c color.Color) {
	s.img.Fill(c)
}

func (s *EbitenSurface) FillRect(x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(s.img, x, y, w, h, c, false)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float32, c color.Color) {
	vector.DrawFilledCircle(s.img, cx, cy, r, c, true)
}

func (s *EbitenSurface) StrokeLine(x1, y1, x2, y2, width float32, c color.Color) {
	vector.StrokeLine(s.img, x1, y1, x2, y2, width, c, true)
}

// FillRadialGradient 用同心环三角形带实现径向渐变，每个色标对应一圈顶点
func (s *EbitenSurface) FillRadialGradient(cx, cy, r float32, stops []GradientStop) {
	if len(stops) < 2 || r <= 0 {
		return
	}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for ring := 0; ring < len(stops); ring++ {
		radius := float64(r) * stops[ring].Offset
		for seg := 0; seg <= gradientSegments; seg++ {
			angle := 2 * math.Pi * float64(seg) / gradientSegments
			x := float64(cx) + math.Cos(angle)*radius
			y := float64(cy) + math.Sin(angle)*radius
			s.vertices = append(s.vertices, vertex(float32(x), float32(y), stops[ring].Color))
		}
	}

	perRing := uint16(gradientSegments + 1)
	for ring := uint16(0); ring < uint16(len(stops)-1); ring++ {
		inner := ring * perRing
		outer := inner + perRing
		for seg := uint16(0); seg < gradientSegments; seg++ {
			s.indices = append(s.indices,
				inner+seg, outer+seg, outer+seg+1,
				inner+seg, outer+seg+1, inner+seg+1,
			)
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// StrokeGradientLine 把线段展开为四边形，两端顶点使用不同颜色
func (s *EbitenSurface) StrokeGradientLine(x1, y1, x2, y2, width float32, from, to color.NRGBA) {
	dx, dy := float64(x2-x1), float64(y2-y1)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// 法线方向
	nx := float32(-dy / length * float64(width) / 2)
	ny := float32(dx / length * float64(width) / 2)

	s.vertices = append(s.vertices[:0],
		vertex(x1+nx, y1+ny, from),
		vertex(x1-nx, y1-ny, from),
		vertex(x2+nx, y2+ny, to),
		vertex(x2-nx, y2-ny, to),
	)
	s.indices = append(s.indices[:0], 0, 1, 2, 1, 3, 2)

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func vertex(x, y float32, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}
