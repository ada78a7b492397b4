package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a page section (hero, showcase, client map).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is a section-sized image with its origin at the section's top-left corner.
	Draw(screen *ebiten.Image)
}

// SectionScene 页面分区场景
//
// 坐标均为分区局部坐标。SceneManager 负责布局、可见性和输入分发。
type SectionScene interface {
	Scene

	// ID 分区标识（导航目标）
	ID() string
	// Height 给定视口尺寸下分区的高度
	Height(viewW, viewH float64) float64
	// Resize 分区尺寸变化
	Resize(w, h float64)
	// SetVisible 分区进入/离开视口或窗口失去/获得焦点
	SetVisible(visible bool)
	// Close 释放分区资源，之后不再被更新
	Close()
}

// PointerHandler 可选接口：接收指针事件（分区局部坐标）
type PointerHandler interface {
	PointerMoved(x, y float64)
	PointerLeft()
	Clicked(x, y float64)
}

// DragHandler 可选接口：接收拖动事件
type DragHandler interface {
	DragStart(x, y float64)
	DragMove(x, y float64)
	DragEnd()
}

// WheelHandler 可选接口：分区自己消费滚轮（例如地图缩放）
// 返回 false 时滚轮继续用于页面滚动
type WheelHandler interface {
	Wheel(x, y, dy float64) bool
}

// KeyHandler 可选接口：键盘事件，返回 true 表示已处理
type KeyHandler interface {
	KeyPressed(key ebiten.Key) bool
}

// Overlay 可选接口：绘制在整个窗口之上的内容（例如预览弹窗）
type Overlay interface {
	// OverlayActive 是否正在显示；显示时独占输入
	OverlayActive() bool
	DrawOverlay(screen *ebiten.Image)
	// OverlayClicked 覆盖层显示时的点击（窗口坐标）
	OverlayClicked(x, y float64)
}

// WindowSizer 可选接口：需要知道整个窗口尺寸的分区（覆盖层布局）
type WindowSizer interface {
	SetWindowSize(w, h float64)
}
