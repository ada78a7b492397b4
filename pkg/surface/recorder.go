package surface

import (
	"image/color"
	"sync"
)

// Op 记录的一次绘制调用
type Op struct {
	Kind   string
	X, Y   float32
	X2, Y2 float32
	W, H   float32
	R      float32
	Color  color.NRGBA
	To     color.NRGBA
	Stops  []GradientStop
}

// Recorder 记录绘制调用的 Surface，用于无图形环境下测试绘制逻辑
type Recorder struct {
	mu   sync.Mutex
	W, H int
	Ops  []Op
}

// NewRecorder 创建指定尺寸的记录表面
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() { r.add(Op{Kind: "clear"}) }

func (r *Recorder) Fill(c color.Color) { r.add(Op{Kind: "fill", Color: nrgba(c)}) }

func (r *Recorder) FillRect(x, y, w, h float32, c color.Color) {
	r.add(Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: nrgba(c)})
}

func (r *Recorder) FillCircle(cx, cy, rad float32, c color.Color) {
	r.add(Op{Kind: "circle", X: cx, Y: cy, R: rad, Color: nrgba(c)})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float32, c color.Color) {
	r.add(Op{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2, W: width, Color: nrgba(c)})
}

func (r *Recorder) FillRadialGradient(cx, cy, rad float32, stops []GradientStop) {
	r.add(Op{Kind: "radial", X: cx, Y: cy, R: rad, Stops: append([]GradientStop(nil), stops...)})
}

func (r *Recorder) StrokeGradientLine(x1, y1, x2, y2, width float32, from, to color.NRGBA) {
	r.add(Op{Kind: "gradient-line", X: x1, Y: y1, X2: x2, Y2: y2, W: width, Color: from, To: to})
}

// Count 统计某类调用次数
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// OfKind 返回某类调用
func (r *Recorder) OfKind(kind string) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.Ops = r.Ops[:0]
	r.mu.Unlock()
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.Ops = append(r.Ops, op)
	r.mu.Unlock()
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
