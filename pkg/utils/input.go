// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DragThreshold 按下后移动超过该距离（像素）视为拖动，否则松开时视为点击
const DragThreshold = 4.0

// PointerSample 一帧的指针采样
// 同时支持鼠标和触摸输入，触摸优先
type PointerSample struct {
	X, Y    float64
	Inside  bool // 指针在窗口内
	Pressed bool // 左键或触摸按下
	WheelY  float64
}

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	PointerMove PointerEventKind = iota
	PointerLeave
	PointerClick
	PointerDragStart
	PointerDragMove
	PointerDragEnd
	PointerWheel
)

// PointerEvent 由 PointerTracker 根据连续采样生成的事件
type PointerEvent struct {
	Kind PointerEventKind
	X, Y float64
	// DY 滚轮量（仅 PointerWheel）
	DY float64
}

// PointerTracker 把每帧的指针采样转换成移动/离开/点击/拖动/滚轮事件
type PointerTracker struct {
	inside   bool
	lastX    float64
	lastY    float64
	pressed  bool
	dragging bool
	startX   float64
	startY   float64
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Dragging 当前是否处于拖动中
func (pt *PointerTracker) Dragging() bool {
	return pt.dragging
}

// Update 处理一帧采样
//
// 参数：
//   - s: 本帧指针采样
//
// 返回：
//   - []PointerEvent: 本帧产生的事件，按发生顺序排列
func (pt *PointerTracker) Update(s PointerSample) []PointerEvent {
	var events []PointerEvent

	if !s.Inside {
		if pt.dragging {
			events = append(events, PointerEvent{Kind: PointerDragEnd, X: pt.lastX, Y: pt.lastY})
		}
		if pt.inside {
			events = append(events, PointerEvent{Kind: PointerLeave})
		}
		pt.inside = false
		pt.pressed = false
		pt.dragging = false
		return events
	}

	moved := !pt.inside || s.X != pt.lastX || s.Y != pt.lastY
	pt.inside = true
	pt.lastX, pt.lastY = s.X, s.Y

	if moved {
		if pt.dragging {
			events = append(events, PointerEvent{Kind: PointerDragMove, X: s.X, Y: s.Y})
		} else {
			events = append(events, PointerEvent{Kind: PointerMove, X: s.X, Y: s.Y})
		}
	}

	switch {
	case s.Pressed && !pt.pressed:
		pt.pressed = true
		pt.startX, pt.startY = s.X, s.Y
	case s.Pressed && pt.pressed && !pt.dragging:
		if math.Hypot(s.X-pt.startX, s.Y-pt.startY) > DragThreshold {
			pt.dragging = true
			events = append(events,
				PointerEvent{Kind: PointerDragStart, X: pt.startX, Y: pt.startY},
				PointerEvent{Kind: PointerDragMove, X: s.X, Y: s.Y})
		}
	case !s.Pressed && pt.pressed:
		pt.pressed = false
		if pt.dragging {
			pt.dragging = false
			events = append(events, PointerEvent{Kind: PointerDragEnd, X: s.X, Y: s.Y})
		} else {
			events = append(events, PointerEvent{Kind: PointerClick, X: s.X, Y: s.Y})
		}
	}

	if s.WheelY != 0 {
		events = append(events, PointerEvent{Kind: PointerWheel, X: s.X, Y: s.Y, DY: s.WheelY})
	}
	return events
}

// 保存最后一次触摸位置（触摸释放时 TouchPosition 已不可用）
var lastTouchX, lastTouchY int

// ReadPointerSample 从 Ebitengine 读取本帧指针状态
//
// 参数：
//   - w, h: 窗口逻辑尺寸，用于判断指针是否在窗口内
func ReadPointerSample(w, h int) PointerSample {
	_, wheelY := ebiten.Wheel()

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
		return PointerSample{X: float64(lastTouchX), Y: float64(lastTouchY), Inside: true, Pressed: true}
	}
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerSample{X: float64(lastTouchX), Y: float64(lastTouchY), Inside: true}
	}

	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < w && y < h
	return PointerSample{
		X:       float64(x),
		Y:       float64(y),
		Inside:  inside,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wheelY,
	}
}
