package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// 界面颜色
var (
	colorText      = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	colorTextMuted = color.NRGBA{R: 160, G: 160, B: 170, A: 255}
	colorAccent    = color.NRGBA{R: 255, G: 196, B: 64, A: 255}
	colorError     = color.NRGBA{R: 255, G: 110, B: 110, A: 255}
	colorBlack     = color.NRGBA{A: 255}
	colorModal     = color.NRGBA{R: 18, G: 18, B: 22, A: 255}
)

// pointInRect checks if a point is inside a rectangle (edges inclusive).
func pointInRect(px, py, x, y, width, height float64) bool {
	return px >= x && px <= x+width && py >= y && py <= y+height
}

// fillRect 绘制实心矩形
func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// strokeRect 绘制矩形边框
func strokeRect(dst *ebiten.Image, x, y, w, h, width float64, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), float32(width), clr, true)
}

// cardColor 第 i 张卡片的底色：按黄金角分布色相，低饱和暗色
func cardColor(i int) color.Color {
	hue := float64(i) * 137.508
	for hue >= 360 {
		hue -= 360
	}
	return colorful.Hsv(hue, 0.45, 0.32).Clamped()
}

// withAlpha 按比例缩放颜色透明度
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A) * alpha)
	return c
}

func color32(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
