package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faceSourceErr  error

	faceMu    sync.Mutex
	faceCache = map[float64]*text.GoTextFace{}
)

// UIFace 返回内置界面字体（Go Regular）指定字号的字体
//
// 字体源只解析一次，同字号的字体对象会被缓存。
//
// 参数：
//   - size: 字号（像素）
//
// 返回：
//   - *text.GoTextFace: 字体
//   - error: 字体数据解析失败
func UIFace(size float64) (*text.GoTextFace, error) {
	faceSourceOnce.Do(func() {
		faceSource, faceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if faceSourceErr != nil {
			faceSourceErr = fmt.Errorf("failed to create ui font source: %w", faceSourceErr)
		}
	})
	if faceSourceErr != nil {
		return nil, faceSourceErr
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[size]; ok {
		return f, nil
	}
	f := &text.GoTextFace{
		Source:    faceSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	faceCache[size] = f
	return f, nil
}

// MustUIFace 同 UIFace，解析失败时 panic（内置字体数据不会损坏）
func MustUIFace(size float64) *text.GoTextFace {
	f, err := UIFace(size)
	if err != nil {
		panic(err)
	}
	return f
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 在空白处断行；单个单词超过最大宽度时单独占一行。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureText(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && MeasureText(candidate, font) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// MeasureText 测量文本宽度
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// DrawText 在 (x, y) 处绘制文本，(x, y) 为文本框左上角
func DrawText(dst *ebiten.Image, textStr string, font *text.GoTextFace, x, y float64, clr color.Color) {
	if dst == nil || font == nil || textStr == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, textStr, font, op)
}

// DrawTextCentered 以 (cx, cy) 为中心绘制单行文本
func DrawTextCentered(dst *ebiten.Image, textStr string, font *text.GoTextFace, cx, cy float64, clr color.Color) {
	if dst == nil || font == nil || textStr == "" {
		return
	}
	w, h := text.Measure(textStr, font, 0)
	DrawText(dst, textStr, font, cx-w/2, cy-h/2, clr)
}
