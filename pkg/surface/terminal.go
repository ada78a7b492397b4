package surface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// 终端单元格近似为 2:1 的像素块
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// densityRamp 亮度从低到高对应的字符
var densityRamp = []rune(" .:-=+*#%@")

type rgb struct{ r, g, b float64 }

// TerminalSurface 把绘制调用光栅化到单元格缓冲，再由 Present 输出到 tcell 屏幕
//
// 每个单元格覆盖 CellW×CellH 个逻辑像素；圆、线按单元格中心采样。
type TerminalSurface struct {
	screen tcell.Screen
	CellW  int
	CellH  int

	cols, rows int
	cells      []rgb
}

// NewTerminalSurface 创建终端表面；screen 可以为 nil（用于纯缓冲测试）
func NewTerminalSurface(screen tcell.Screen, cols, rows int) *TerminalSurface {
	t := &TerminalSurface{screen: screen, CellW: DefaultCellWidth, CellH: DefaultCellHeight}
	t.Resize(cols, rows)
	return t
}

// Resize 调整单元格网格大小，内容清空
func (t *TerminalSurface) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	t.cols, t.rows = cols, rows
	t.cells = make([]rgb, cols*rows)
}

// Grid 返回单元格网格尺寸
func (t *TerminalSurface) Grid() (cols, rows int) {
	return t.cols, t.rows
}

// Size 返回逻辑像素尺寸
func (t *TerminalSurface) Size() (int, int) {
	return t.cols * t.CellW, t.rows * t.CellH
}

func (t *TerminalSurface) Clear() {
	clear(t.cells)
}

func (t *TerminalSurface) Fill(c color.Color) {
	v := toRGB(c)
	for i := range t.cells {
		t.cells[i] = v
	}
}

func (t *TerminalSurface) FillRect(x, y, w, h float32, c color.Color) {
	src, a := toRGBA(c)
	c0, r0 := t.cellAt(float64(x), float64(y))
	// 右下边界不含
	c1 := int(math.Ceil(float64(x+w)/float64(t.CellW))) - 1
	r1 := int(math.Ceil(float64(y+h)/float64(t.CellH))) - 1
	for row := max(r0, 0); row <= min(r1, t.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, t.cols-1); col++ {
			t.blend(col, row, src, a)
		}
	}
}

func (t *TerminalSurface) FillCircle(cx, cy, r float32, c color.Color) {
	src, a := toRGBA(c)
	t.eachCellIn(float64(cx), float64(cy), float64(r), func(col, row int, _ float64) {
		t.blend(col, row, src, a)
	})
}

func (t *TerminalSurface) StrokeLine(x1, y1, x2, y2, _ float32, c color.Color) {
	src, a := toRGBA(c)
	t.walkLine(float64(x1), float64(y1), float64(x2), float64(y2), func(col, row int, _ float64) {
		t.blend(col, row, src, a)
	})
}

func (t *TerminalSurface) FillRadialGradient(cx, cy, r float32, stops []GradientStop) {
	if len(stops) == 0 || r <= 0 {
		return
	}
	t.eachCellIn(float64(cx), float64(cy), float64(r), func(col, row int, dist float64) {
		c := SampleGradient(stops, dist/float64(r))
		src, a := toRGBA(c)
		t.blend(col, row, src, a)
	})
}

func (t *TerminalSurface) StrokeGradientLine(x1, y1, x2, y2, _ float32, from, to color.NRGBA) {
	t.walkLine(float64(x1), float64(y1), float64(x2), float64(y2), func(col, row int, frac float64) {
		src, a := toRGBA(LerpColor(from, to, frac))
		t.blend(col, row, src, a)
	})
}

// Present 把缓冲写入 tcell 屏幕并刷新
func (t *TerminalSurface) Present() {
	if t.screen == nil {
		return
	}
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			v := t.cells[row*t.cols+col]
			ch, fg := t.glyph(v)
			style := tcell.StyleDefault.
				Background(tcell.ColorBlack).
				Foreground(fg)
			t.screen.SetContent(col, row, ch, nil, style)
		}
	}
	t.screen.Show()
}

// Luminance 返回单元格亮度 [0,1]，越界返回 0
func (t *TerminalSurface) Luminance(col, row int) float64 {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return 0
	}
	v := t.cells[row*t.cols+col]
	return 0.2126*v.r + 0.7152*v.g + 0.0722*v.b
}

func (t *TerminalSurface) glyph(v rgb) (rune, tcell.Color) {
	lum := 0.2126*v.r + 0.7152*v.g + 0.0722*v.b
	idx := int(math.Round(lum * float64(len(densityRamp)-1)))
	idx = max(0, min(idx, len(densityRamp)-1))
	peak := math.Max(v.r, math.Max(v.g, v.b))
	if peak <= 0 {
		return densityRamp[idx], tcell.ColorBlack
	}
	// 字符承担亮度，前景色只表达色相
	fg := tcell.NewRGBColor(
		int32(v.r/peak*255),
		int32(v.g/peak*255),
		int32(v.b/peak*255),
	)
	return densityRamp[idx], fg
}

func (t *TerminalSurface) cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / float64(t.CellW))), int(math.Floor(y / float64(t.CellH)))
}

// eachCellIn 遍历中心落在圆内的单元格，回调参数为中心到圆心的距离
func (t *TerminalSurface) eachCellIn(cx, cy, r float64, fn func(col, row int, dist float64)) {
	c0, r0 := t.cellAt(cx-r, cy-r)
	c1, r1 := t.cellAt(cx+r, cy+r)
	for row := max(r0, 0); row <= min(r1, t.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, t.cols-1); col++ {
			px := (float64(col) + 0.5) * float64(t.CellW)
			py := (float64(row) + 0.5) * float64(t.CellH)
			d := math.Hypot(px-cx, py-cy)
			if d <= r {
				fn(col, row, d)
			}
		}
	}
	// 半径小于一个单元格时至少点亮圆心所在单元格
	if r < float64(min(t.CellW, t.CellH)) {
		col, row := t.cellAt(cx, cy)
		if t.inside(col, row) {
			fn(col, row, 0)
		}
	}
}

// walkLine 沿线段按单元格步进，回调参数为沿线比例 [0,1]
func (t *TerminalSurface) walkLine(x1, y1, x2, y2 float64, fn func(col, row int, frac float64)) {
	dx := (x2 - x1) / float64(t.CellW)
	dy := (y2 - y1) / float64(t.CellH)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		col, row := t.cellAt(x1, y1)
		if t.inside(col, row) {
			fn(col, row, 0)
		}
		return
	}
	lastCol, lastRow := -1, -1
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		col, row := t.cellAt(x1+(x2-x1)*frac, y1+(y2-y1)*frac)
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		if t.inside(col, row) {
			fn(col, row, frac)
		}
	}
}

func (t *TerminalSurface) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < t.cols && row < t.rows
}

func (t *TerminalSurface) blend(col, row int, src rgb, a float64) {
	i := row*t.cols + col
	dst := t.cells[i]
	t.cells[i] = rgb{
		r: dst.r + (src.r-dst.r)*a,
		g: dst.g + (src.g-dst.g)*a,
		b: dst.b + (src.b-dst.b)*a,
	}
}

func toRGB(c color.Color) rgb {
	v, _ := toRGBA(c)
	return v
}

// toRGBA 转为非预乘的 [0,1] 分量
func toRGBA(c color.Color) (rgb, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rgb{
		r: float64(n.R) / 255,
		g: float64(n.G) / 255,
		b: float64(n.B) / 255,
	}, float64(n.A) / 255
}
