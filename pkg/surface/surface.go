// Package surface 定义动画场的绘制目标
//
// 绘制系统只依赖 Surface 接口，因此同一套绘制逻辑既可以输出到 Ebitengine 窗口，
// 也可以输出到终端（tcell），测试中则使用 Recorder 记录绘制调用。
package surface

import "image/color"

// GradientStop 径向渐变色标，Offset 0 = 中心，1 = 边缘
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface 2D 绘制表面
// 坐标为表面局部像素坐标，颜色为非预乘 alpha
type Surface interface {
	// Size 返回表面尺寸（像素）
	Size() (w, h int)
	// Clear 清空为透明
	Clear()
	// Fill 用不透明颜色填满整个表面
	Fill(c color.Color)
	// FillRect 以 alpha 混合填充矩形（低 alpha 全屏填充即拖尾淡出）
	FillRect(x, y, w, h float32, c color.Color)
	FillCircle(cx, cy, r float32, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float32, c color.Color)
	// FillRadialGradient 以 (cx, cy) 为中心、半径 r 绘制径向渐变圆
	FillRadialGradient(cx, cy, r float32, stops []GradientStop)
	// StrokeGradientLine 从 from 渐变到 to 的线段
	StrokeGradientLine(x1, y1, x2, y2, width float32, from, to color.NRGBA)
}

// Usable 判断表面是否可以绘制
// nil 或零尺寸表面视为获取失败，调用方静默跳过绘制
func Usable(s Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Size()
	return w > 0 && h > 0
}

// SampleGradient 计算渐变在 t∈[0,1] 处的颜色（线性插值）
func SampleGradient(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return LerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// LerpColor 在两个非预乘颜色间插值
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
